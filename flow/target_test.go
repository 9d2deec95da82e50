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

package flow

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"
)

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	e, err := parser.ParseExprFrom(token.NewFileSet(), "e.go", src, 0)
	require.NoError(t, err)
	return e
}

func TestTargetKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src     string
		wantKey string
		wantOK  bool
	}{
		{"a", "a", true},
		{"a.b", "a.b", true},
		{"a.b.c", "a.b.c", true},
		{"(a.b)", "a.b", true},
		{"_", "", false},
		{"nil", "", false},
		{"a[0]", "", false},
		{"a.b()", "", false},
		{"*a", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			key, ok := TargetKey(parseExpr(t, tt.src))
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantKey, key)
		})
	}
}
