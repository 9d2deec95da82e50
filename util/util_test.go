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

package util

import (
	"go/ast"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeBarsNilness(t *testing.T) {
	tests := []struct {
		name string
		typ  types.Type
		want bool
	}{
		{"basic int", types.Typ[types.Int], true},
		{"basic string", types.Typ[types.String], true},
		{"untyped nil", types.Typ[types.UntypedNil], false},
		{"pointer", types.NewPointer(types.Typ[types.Int]), false},
		{"slice", types.NewSlice(types.Typ[types.Int]), false},
		{"map", types.NewMap(types.Typ[types.String], types.Typ[types.Int]), false},
		{"chan", types.NewChan(types.SendRecv, types.Typ[types.Int]), false},
		{"interface", types.NewInterfaceType(nil, nil), false},
		{"array", types.NewArray(types.Typ[types.Int], 3), true},
		{"struct", types.NewStruct(nil, nil), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeBarsNilness(tt.typ))
		})
	}
}

func TestIsLiteral(t *testing.T) {
	nilIdent := &ast.Ident{Name: "nil"}
	assert.True(t, IsLiteral(nilIdent, "nil", "true"))
	assert.False(t, IsLiteral(nilIdent, "true", "false"))
	assert.False(t, IsLiteral(&ast.BasicLit{Kind: token.INT, Value: "1"}, "nil"))
}

func TestIsEmptyExpr(t *testing.T) {
	assert.True(t, IsEmptyExpr(&ast.Ident{Name: "_"}))
	assert.False(t, IsEmptyExpr(&ast.Ident{Name: "x"}))
}

func TestPortionAfterSep(t *testing.T) {
	assert.Equal(t, "b/c", PortionAfterSep("a/b/c", "/", 1))
	assert.Equal(t, "a/b/c", PortionAfterSep("a/b/c", "/", 5))
}

func TestGetSelectorExprHeadIdent(t *testing.T) {
	// a.b.c
	inner := &ast.SelectorExpr{X: &ast.Ident{Name: "a"}, Sel: &ast.Ident{Name: "b"}}
	outer := &ast.SelectorExpr{X: inner, Sel: &ast.Ident{Name: "c"}}
	head := GetSelectorExprHeadIdent(outer)
	if assert.NotNil(t, head) {
		assert.Equal(t, "a", head.Name)
	}

	notIdentHead := &ast.SelectorExpr{X: &ast.CallExpr{Fun: &ast.Ident{Name: "f"}}, Sel: &ast.Ident{Name: "c"}}
	assert.Nil(t, GetSelectorExprHeadIdent(notIdentHead))
}

func TestQualifiedSelectorName(t *testing.T) {
	sel := &ast.SelectorExpr{X: &ast.Ident{Name: "Constraint"}, Sel: &ast.Ident{Name: "NotNull"}}
	assert.Equal(t, "Constraint.NotNull", QualifiedSelectorName(sel))

	notIdent := &ast.SelectorExpr{X: &ast.CallExpr{}, Sel: &ast.Ident{Name: "NotNull"}}
	assert.Equal(t, "", QualifiedSelectorName(notIdent))
}
