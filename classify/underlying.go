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

package classify

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
)

// ParseFailure reports that Underlying (or Classify) encountered an expression shape it does not
// recognize. Per this analyzer's error-handling design, an unknown shape must never be silently
// treated as MaybeNull - it has to surface as a diagnostic, since swallowing it would hide bugs
// in the analyzer itself rather than in the code being analyzed.
type ParseFailure struct {
	Pos  token.Pos
	Kind string
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("unrecognized expression shape %s", e.Kind)
}

// Underlying strips syntactic wrappers from expr to find the "real" node whose nullness a guard
// or assignment targets: parens, casts, awaits, coalesce, conditional access, and so on. It
// mirrors spec's §4.4 case table one-for-one, retargeted onto Go syntax per SPEC_FULL.md.
func Underlying(expr ast.Expr, info *types.Info) (ast.Expr, error) {
	switch e := expr.(type) {
	case *ast.SelectorExpr:
		// Member access: a.b -> b itself is the underlying target (its name resolves through
		// e.Sel, but the node identity callers key off of is the whole selector).
		return e, nil
	case *ast.ParenExpr:
		return Underlying(e.X, info)
	case *ast.StarExpr:
		return Underlying(e.X, info)
	case *ast.UnaryExpr:
		if e.Op == token.ARROW {
			// Channel receive, this analyzer's `await` retargeting (see classifyAwait) - the
			// underlying member is the receive expression itself; there is nothing further to
			// peel since the channel's element type is already the unwrapped T.
			return e, nil
		}
		// Other prefix unary operators (!, -, ^, &) - recurse into the operand, mirroring
		// spec's "prefix unary -> operand" rule.
		return Underlying(e.X, info)
	case *ast.TypeAssertExpr:
		// Cast analog (single-value form): x.(T) - recurse into x.
		return Underlying(e.X, info)
	case *ast.CallExpr:
		if ok, inner := asTypeConversion(e, info); ok {
			return Underlying(inner, info)
		}
		if ok, b := asCoalesceCall(e, info); ok {
			return Underlying(b, info)
		}
		if inner, ok := asAwaitMethodCall(e, info); ok {
			return Underlying(inner, info)
		}
		// A plain invocation is itself a terminal case.
		return e, nil
	case *ast.Ident, *ast.BasicLit, *ast.CompositeLit, *ast.ArrayType:
		// Identifiers, literals, object/array/implicit-array creation are all terminal.
		return e, nil
	case *ast.IndexExpr, *ast.IndexListExpr:
		// Element/indexer access is terminal.
		return e, nil
	case *ast.BinaryExpr:
		// Binary expressions (arithmetic, comparisons, logical) are terminal for the purposes of
		// underlying-member resolution - none of them name a tracked target directly.
		return e, nil
	default:
		return nil, &ParseFailure{Pos: expr.Pos(), Kind: fmt.Sprintf("%T", expr)}
	}
}
