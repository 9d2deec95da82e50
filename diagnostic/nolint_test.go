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

package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNolintContainsAnalyzer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"bare nolint", "//nolint", true},
		{"nolint all", "//nolint:all", true},
		{"nolint this analyzer", "//nolint:nnanalyzer", true},
		{"nolint this analyzer among others", "//nolint:unused,nnanalyzer", true},
		{"case insensitive", "//nolint:NNAnalyzer", true},
		{"nolint other linter only", "//nolint:unused", false},
		{"with trailing explanation", "//nolint:nnanalyzer // because reasons", true},
		{"unrelated comment", "// just a regular comment", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, nolintContainsAnalyzer(tt.text))
		})
	}
}
