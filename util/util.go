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

// Package util implements small, dependency-free utility functions shared across the analyzer's
// sub-packages, mostly thin wrappers around go/ast and go/types.
package util

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"github.com/nullcontract/nnanalyzer/config"
	"golang.org/x/tools/go/analysis"
)

// ErrorType is the type of the builtin "error" interface.
var ErrorType = types.Universe.Lookup("error").Type()

// BoolType is the type of the builtin "bool" type.
var BoolType = types.Universe.Lookup("bool").Type()

// UnwrapPtr unwraps a pointer type and returns the element type. For all other types it returns
// the type unmodified.
func UnwrapPtr(t types.Type) types.Type {
	if ptr, ok := t.(*types.Pointer); ok {
		return ptr.Elem()
	}
	return t
}

// TypeBarsNilness returns true iff the type `t` is NOT inhabited by nil, i.e., it is a "value
// type" in spec terms (basic types other than untyped nil, arrays, structs, function types).
// This is the Go realization of spec §4.3.2's "value type cannot be null" rule.
func TypeBarsNilness(t types.Type) bool {
	switch t := t.(type) {
	case *types.Array:
		return true
	case *types.Slice, *types.Pointer, *types.Tuple, *types.Map, *types.Chan, *types.Interface:
		return false
	case *types.Signature:
		return true
	case *types.Alias, *types.Named:
		return TypeBarsNilness(t.Underlying())
	case *types.Struct:
		return true
	case *types.Basic:
		return t.Kind() != types.UntypedNil
	default:
		return true
	}
}

// ExprBarsNilness returns if the expression can never be nil for the simple reason that nil does
// not inhabit its type.
func ExprBarsNilness(pass *analysis.Pass, expr ast.Expr) bool {
	t := pass.TypesInfo.TypeOf(expr)
	if t == nil {
		return false
	}
	return TypeBarsNilness(t)
}

// FuncIdentFromCallExpr returns the function identifier from a call expression, or nil if the
// call is to something else (e.g., an anonymous function literal invoked in place).
func FuncIdentFromCallExpr(expr *ast.CallExpr) *ast.Ident {
	switch fun := expr.Fun.(type) {
	case *ast.Ident:
		return fun
	case *ast.SelectorExpr:
		return fun.Sel
	default:
		return nil
	}
}

// GetSelectorExprHeadIdent returns the head identifier of a chained selector expression
// (e.g., `a` in `a.b.c`), or nil if the chain does not bottom out in a plain identifier.
func GetSelectorExprHeadIdent(selExpr *ast.SelectorExpr) *ast.Ident {
	switch x := selExpr.X.(type) {
	case *ast.Ident:
		return x
	case *ast.SelectorExpr:
		return GetSelectorExprHeadIdent(x)
	default:
		return nil
	}
}

// IsLiteral returns true if `expr` is an identifier matching one of the given literal names
// (e.g., "nil", "true", "false").
func IsLiteral(expr ast.Expr, literals ...string) bool {
	ident, ok := expr.(*ast.Ident)
	if !ok {
		return false
	}
	for _, literal := range literals {
		if ident.Name == literal {
			return true
		}
	}
	return false
}

// GetFunctionParamNode returns the ast param node matching the variable searchParam.
func GetFunctionParamNode(funcDecl *ast.FuncDecl, searchParam *types.Var) ast.Expr {
	for _, params := range funcDecl.Type.Params.List {
		for _, param := range params.Names {
			if searchParam.Name() == param.Name && param.Name != "" && param.Name != "_" {
				return param
			}
		}
	}
	return nil
}

// GetParamObjFromIndex returns the *types.Var corresponding to the parameter at argIdx, handling
// the variadic tail by returning the final parameter object for any out-of-range index.
func GetParamObjFromIndex(functionType *types.Func, argIdx int) *types.Var {
	sig := functionType.Type().(*types.Signature)
	params := sig.Params()
	if argIdx < params.Len() {
		return params.At(argIdx)
	}
	if !sig.Variadic() || params.Len() == 0 {
		return nil
	}
	return params.At(params.Len() - 1)
}

// PortionAfterSep returns the suffix of `input` containing at most `occ` occurrences of `sep`.
func PortionAfterSep(input, sep string, occ int) string {
	splits := strings.Split(input, sep)
	n := len(splits)
	if n <= occ+1 {
		return input
	}
	return strings.Join(splits[n-(occ+1):], sep)
}

// TruncatePosition truncates the directory prefix of the filename to config.DirLevelsToPrintForTriggers.
func TruncatePosition(position token.Position) token.Position {
	position.Filename = PortionAfterSep(position.Filename, "/", config.DirLevelsToPrintForTriggers)
	return position
}

// PosToLocation converts a token.Pos into a (possibly truncated) token.Position.
func PosToLocation(pos token.Pos, pass *analysis.Pass) token.Position {
	return TruncatePosition(pass.Fset.Position(pos))
}

// IsEmptyExpr checks if an expression is the blank identifier.
func IsEmptyExpr(expr ast.Expr) bool {
	id, ok := expr.(*ast.Ident)
	return ok && id.Name == "_"
}

// QualifiedSelectorName returns "X.Sel" for a selector expression whose receiver is a bare
// identifier, and "" otherwise. Used to match package- or variable-qualified calls like
// `Constraint.NotNull(x)` by surface name only (see config.ConstraintTypeName).
func QualifiedSelectorName(sel *ast.SelectorExpr) string {
	ident, ok := sel.X.(*ast.Ident)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s.%s", ident.Name, sel.Sel.Name)
}
