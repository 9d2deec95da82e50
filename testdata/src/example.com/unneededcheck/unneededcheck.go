// Copyright (c) 2026 The NNAnalyzer Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package unneededcheck

func use(*string) {}

// nonnil(s)
func redundant(s *string) {
	if s != nil { //want "UnneededNullCheck"
		use(s)
	}
}

func notRedundant(s *string) {
	if s != nil {
		use(s)
	}
}

// nonnil(s)
func redundantNegated(s *string) {
	if s == nil { //want "UnneededNullCheck"
		return
	}
	use(s)
}
