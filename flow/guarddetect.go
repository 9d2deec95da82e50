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
	"go/token"

	"github.com/nullcontract/nnanalyzer/annotation"
	"github.com/nullcontract/nnanalyzer/config"
	"github.com/nullcontract/nnanalyzer/knownsymbols"
	"github.com/nullcontract/nnanalyzer/util"
	"golang.org/x/tools/go/analysis"
)

// guardDetector recognizes the null-related predicates spec §4.5 lists as proving a target
// non-null on a condition's truthy branch.
type guardDetector struct {
	pass   *analysis.Pass
	reader *annotation.Reader
	kb     *knownsymbols.KnowledgeBase
}

// positiveGuard reports the target key that cond proves NotNull on the true branch, if any.
func (g *guardDetector) positiveGuard(cond ast.Expr) (string, bool) {
	switch e := cond.(type) {
	case *ast.BinaryExpr:
		if e.Op == token.NEQ {
			if util.IsLiteral(e.X, "nil") {
				return TargetKey(e.Y)
			}
			if util.IsLiteral(e.Y, "nil") {
				return TargetKey(e.X)
			}
		}
		return "", false
	case *ast.CallExpr:
		return g.nullCheckCallGuard(e)
	case *ast.UnaryExpr:
		if e.Op == token.NOT {
			if call, ok := e.X.(*ast.CallExpr); ok {
				return g.negatedPredicateGuard(call)
			}
		}
		return "", false
	case *ast.ParenExpr:
		return g.positiveGuard(e.X)
	default:
		return "", false
	}
}

// negativeGuard reports the target key that cond proves Null (or at least not-yet-proven-non-null)
// on the true branch - the mirror image of positiveGuard, used to recognize the common
// `if x == nil { return ... }` early-exit idiom, after which x is non-null for the rest of the
// enclosing statement list.
func (g *guardDetector) negativeGuard(cond ast.Expr) (string, bool) {
	e, ok := cond.(*ast.BinaryExpr)
	if !ok || e.Op != token.EQL {
		return "", false
	}
	if util.IsLiteral(e.X, "nil") {
		return TargetKey(e.Y)
	}
	if util.IsLiteral(e.Y, "nil") {
		return TargetKey(e.X)
	}
	return "", false
}

// nullCheckCallGuard recognizes `target.Method(...)` where Method is marked `// isnullcheck` or is
// a known stdlib null-check predicate, asserting target != nil on the truthy branch.
func (g *guardDetector) nullCheckCallGuard(call *ast.CallExpr) (string, bool) {
	fn := knownsymbols.FuncObj(call, g.pass.TypesInfo)
	if fn == nil {
		return "", false
	}
	if idx, ok := g.kb.IsNullCheckPredicate(fn); ok && idx < len(call.Args) {
		return TargetKey(call.Args[idx])
	}
	if g.reader.IsNullCheck(fn) {
		if sel, ok := call.Fun.(*ast.SelectorExpr); ok {
			return TargetKey(sel.X)
		}
		if len(call.Args) > 0 {
			return TargetKey(call.Args[0])
		}
	}
	return "", false
}

// negatedPredicateGuard recognizes `!predicate(x)` where predicate is a known/annotated
// null-check whose *negation* proves x non-null (the Go analog of
// `!string.IsNullOrEmpty(x)`/`!string.IsNullOrWhiteSpace(x)` from spec §4.5).
func (g *guardDetector) negatedPredicateGuard(call *ast.CallExpr) (string, bool) {
	fn := knownsymbols.FuncObj(call, g.pass.TypesInfo)
	if fn == nil {
		return "", false
	}
	if idx, ok := g.kb.IsNullCheckPredicate(fn); ok && idx < len(call.Args) {
		return TargetKey(call.Args[idx])
	}
	return "", false
}

// constraintCall recognizes `Constraint.NotNull(expr)` (matched by bare name, see
// config.ConstraintTypeName/ConstraintMethodName). It returns the constrained target key and
// whether the call's argument shape was recognized at all (a call matched by name but with an
// unrecognized argument shape is an InvalidConstraint candidate, not simply "not a constraint
// call" - callers distinguish the two via isConstraintCall).
func (g *guardDetector) constraintCall(call *ast.CallExpr) (key string, isConstraintCall bool, validShape bool) {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return "", false, false
	}
	if util.QualifiedSelectorName(sel) != config.ConstraintTypeName+"."+config.ConstraintMethodName {
		return "", false, false
	}
	if len(call.Args) != 1 {
		return "", true, false
	}
	arg := call.Args[0]
	if lit, ok := arg.(*ast.FuncLit); ok {
		if len(lit.Body.List) != 1 {
			return "", true, false
		}
		ret, ok := lit.Body.List[0].(*ast.ReturnStmt)
		if !ok || len(ret.Results) != 1 {
			return "", true, false
		}
		arg = ret.Results[0]
	}
	key, ok = TargetKey(arg)
	return key, true, ok
}

// DetectConstraintCall exposes constraintCall's recognition of `Constraint.NotNull(...)` shapes to
// callers outside this package (the diagnostic emitter reports UnneededConstraint/InvalidConstraint
// directly at these call sites, rather than through Analysis's per-assignment bookkeeping).
func DetectConstraintCall(pass *analysis.Pass, reader *annotation.Reader, kb *knownsymbols.KnowledgeBase, call *ast.CallExpr) (key string, isConstraintCall bool, validShape bool) {
	d := &guardDetector{pass: pass, reader: reader, kb: kb}
	return d.constraintCall(call)
}

// terminates reports whether block's control flow never falls through to the statement following
// it - the last statement is a return, a panic call, or a break/continue/goto.
func terminates(block *ast.BlockStmt) bool {
	if block == nil || len(block.List) == 0 {
		return false
	}
	switch last := block.List[len(block.List)-1].(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.BranchStmt:
		return last.Tok == token.BREAK || last.Tok == token.CONTINUE || last.Tok == token.GOTO
	case *ast.ExprStmt:
		call, ok := last.X.(*ast.CallExpr)
		if !ok {
			return false
		}
		ident, ok := call.Fun.(*ast.Ident)
		return ok && ident.Name == "panic"
	default:
		return false
	}
}
