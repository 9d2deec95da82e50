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

package nnanalyzer

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"
)

func TestNNAnalyzer(t *testing.T) {
	t.Parallel()

	testdata := analysistest.TestData()

	// For descriptions of the purpose of each of the following tests, consult their source files
	// located in testdata/src/example.com/<package>.
	tests := []struct {
		name     string
		patterns []string
	}{
		{name: "HelloWorld", patterns: []string{"example.com/helloworld"}},
		{name: "NullAssignment", patterns: []string{"example.com/nullassignment"}},
		{name: "UnneededCheck", patterns: []string{"example.com/unneededcheck"}},
		{name: "Constraints", patterns: []string{"example.com/constraints"}},
		{name: "RefParam", patterns: []string{"example.com/refparam"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			analysistest.Run(t, testdata, Analyzer, tt.patterns...)
		})
	}
}
