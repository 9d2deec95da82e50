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

// Package analysishelper provides EnhancedPass, a drop-in wrapper around *analysis.Pass with
// convenience methods the rest of the analyzer leans on repeatedly.
package analysishelper

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"

	"github.com/nullcontract/nnanalyzer/config"
	"github.com/nullcontract/nnanalyzer/util"
	"github.com/nullcontract/nnanalyzer/util/tokenhelper"
	"golang.org/x/tools/go/analysis"
)

// EnhancedPass is a drop-in replacement for `*analysis.Pass` that provides additional helper
// methods to make it easier to reason about nilness of AST expressions.
type EnhancedPass struct {
	*analysis.Pass
}

// NewEnhancedPass creates a new EnhancedPass from the given *analysis.Pass.
func NewEnhancedPass(pass *analysis.Pass) *EnhancedPass {
	return &EnhancedPass{Pass: pass}
}

// Panic panics with the given message and additional position information - used only for
// conditions that indicate a bug in the analyzer itself, never for malformed input.
func (p *EnhancedPass) Panic(msg string, pos token.Pos) {
	position := p.Fset.Position(pos)
	panic(fmt.Sprintf("%s (%s:%d)", msg, position.Filename, position.Line))
}

// IsZero returns if the given expression is evaluated to integer zero at compile time. For
// example, zero literal, zero const or binary expression that evaluates to zero, e.g., 1 - 1
// should all return true. Note the function returns false for zero string `"0"`.
func (p *EnhancedPass) IsZero(expr ast.Expr) bool {
	value, ok := p.ConstInt(expr)
	return ok && value == 0
}

// ConstInt returns the constant integer value of the given expression if it is a constant.
func (p *EnhancedPass) ConstInt(expr ast.Expr) (int64, bool) {
	tv, ok := p.TypesInfo.Types[expr]
	if !ok {
		return 0, false
	}
	intValue, ok := constant.Val(tv.Value).(int64)
	if !ok {
		return 0, false
	}
	return intValue, true
}

// IsNil checks if the given expression evaluates to untyped nil at compile time. It also treats
// the identifier `nil` as nil to support fake identifiers inserted by the classifier.
func (p *EnhancedPass) IsNil(expr ast.Expr) bool {
	if util.IsLiteral(expr, "nil") {
		return true
	}
	tv, ok := p.TypesInfo.Types[expr]
	if !ok {
		return false
	}
	return tv.IsNil()
}

// HumanReadablePosition modifies the Position's filename to be more human-friendly (truncated or
// relative to cwd depending on configuration).
func (p *EnhancedPass) HumanReadablePosition(position token.Position) token.Position {
	conf := p.ResultOf[config.Analyzer].(*config.Config)
	if conf.PrintFullFilePath {
		position.Filename = tokenhelper.RelToCwd(position.Filename)
	} else {
		position.Filename = util.PortionAfterSep(position.Filename, "/", config.DirLevelsToPrintForTriggers)
	}
	return position
}

// PosToLocation converts a token.Pos into a human-readable token.Position.
func (p *EnhancedPass) PosToLocation(pos token.Pos) token.Position {
	return p.HumanReadablePosition(p.Fset.Position(pos))
}

// ExprBarsNilness returns if the expression can never be nil for the simple reason that nil does
// not inhabit its type.
func (p *EnhancedPass) ExprBarsNilness(expr ast.Expr) bool {
	return util.ExprBarsNilness(p.Pass, expr)
}

// IsSliceAppendCall checks if `node` represents the builtin append(slice []Type, elems ...Type) []Type
// call on a slice.
func (p *EnhancedPass) IsSliceAppendCall(node *ast.CallExpr) (*types.Slice, bool) {
	if funcName, ok := node.Fun.(*ast.Ident); ok {
		if declObj := p.TypesInfo.Uses[funcName]; declObj != nil {
			if declObj.String() == "builtin append" {
				if sliceType, ok := p.TypesInfo.TypeOf(node.Args[0]).(*types.Slice); ok {
					return sliceType, true
				}
			}
		}
	}
	return nil, false
}

// ExprIsAuthentic returns true iff the passed expression is an AST node found in the source
// program of this pass, not one synthesized as an intermediate value during classification.
func (p *EnhancedPass) ExprIsAuthentic(expr ast.Expr) bool {
	return p.TypesInfo.TypeOf(expr) != nil
}
