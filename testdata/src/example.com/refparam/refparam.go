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

package refparam

type Widget struct {
	// nonnil
	Name *string
}

func reassign(p **string) {}

func escape(w *Widget) {
	reassign(&w.Name) //want "NotNullAsRefParameter"
}

func notAField(s *string) {
	reassign(&s)
}
