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

import "go/ast"

// TargetKey returns the normalized dotted-path identity of expr (e.g. "t.a.b"), and whether expr
// is a stable, trackable target at all. Go has no implicit receiver the way `this.a.b` and `a.b`
// can denote the same target in the source language this analyzer's spec describes - method
// receivers are always named explicitly in Go - so normalization here is simply joining the chain
// of identifier names; there is no receiver-collapsing step to perform.
//
// Element accesses, dereferences, method calls, and casts break key identity, exactly as spec
// mandates: such expressions are not tracked, and TargetKey reports ok=false for them.
func TargetKey(expr ast.Expr) (string, bool) {
	switch e := expr.(type) {
	case *ast.Ident:
		if e.Name == "_" || e.Name == "nil" {
			return "", false
		}
		return e.Name, true
	case *ast.SelectorExpr:
		base, ok := TargetKey(e.X)
		if !ok {
			return "", false
		}
		return base + "." + e.Sel.Name, true
	case *ast.ParenExpr:
		return TargetKey(e.X)
	default:
		return "", false
	}
}
