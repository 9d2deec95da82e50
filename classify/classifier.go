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
	"go/ast"
	"go/token"
	"go/types"

	"github.com/nullcontract/nnanalyzer/annotation"
	"github.com/nullcontract/nnanalyzer/config"
	"github.com/nullcontract/nnanalyzer/knownsymbols"
	"github.com/nullcontract/nnanalyzer/util"
	"github.com/nullcontract/nnanalyzer/util/typeshelper"
	"golang.org/x/tools/go/analysis"
)

// FlowQuerier is the narrow interface classify needs from the method-local flow analyzer. It is
// defined here, not in the flow package, so that flow can import classify (to classify the
// right-hand side of assignments and guard conditions) without classify importing flow back -
// the two subsystems are mutually recursive per spec §1, and this is the idiomatic Go way to
// break that cycle: classify depends only on the narrow capability it needs, and flow.Analysis
// satisfies it.
type FlowQuerier interface {
	// IsAlwaysAssignedNotNull reports whether expr is guaranteed non-null at the given position
	// within the method this FlowQuerier was built for.
	IsAlwaysAssignedNotNull(expr ast.Expr, at token.Pos) bool
}

// Context carries the one piece of out-of-band state spec's classify() threads through a
// classification: whether any symbol visited along the way carried an explicit NotNull-like
// annotation (used by the flow analyzer and diagnostic emitter to distinguish "provably non-null
// because of static typing" from "provably non-null because of a declared contract").
type Context struct {
	HasNotNullAttribute bool
}

// Classifier implements spec's classify(expr, semantic_model, ctx) as a method so it can carry
// the resolved annotation Reader and knowledge base for one compilation.
type Classifier struct {
	Pass   *analysis.Pass
	Reader *annotation.Reader
	KB     *knownsymbols.KnowledgeBase
	// Flow is consulted when classifying identifiers/parameters that the flow analyzer can prove
	// assigned; it may be nil (e.g., while testing classify in isolation), in which case those
	// cases conservatively answer MaybeNull rather than panicking.
	Flow FlowQuerier
}

// Classify returns the ValueType for expr, per the case table in spec §4.3. Cases not explicitly
// listed there fall through to MaybeNull, exactly as spec mandates - this is why Classify returns
// an error only when a *structurally connected* sub-resolution (Underlying) hits a genuinely
// unrecognized node shape, not merely because expr itself isn't covered by an explicit case.
func (c *Classifier) Classify(expr ast.Expr, ctx *Context) (ValueType, error) {
	switch e := expr.(type) {
	case *ast.Ident:
		if e.Name == "nil" {
			return Null, nil
		}
		return c.classifyIdent(e, ctx)

	case *ast.BasicLit:
		if e.Kind == token.STRING {
			return NotNull, nil
		}
		return MaybeNull, nil

	case *ast.CompositeLit:
		// Object/array/map/struct creation.
		return NotNull, nil

	case *ast.FuncLit:
		// Lambda.
		return NotNull, nil

	case *ast.UnaryExpr:
		if e.Op == token.AND {
			// &T{...}: address-of a composite literal is itself a fresh, non-nil pointer.
			if _, ok := e.X.(*ast.CompositeLit); ok {
				return NotNull, nil
			}
		}
		if e.Op == token.ARROW {
			return c.classifyAwait(e, e.X, ctx)
		}
		return MaybeNull, nil

	case *ast.ParenExpr:
		return c.Classify(e.X, ctx)

	case *ast.TypeAssertExpr:
		// Cast analog (single-value form): classify the inner expression.
		return c.Classify(e.X, ctx)

	case *ast.SelectorExpr:
		return c.classifyMember(e, ctx)

	case *ast.CallExpr:
		return c.classifyCall(e, ctx)

	case *ast.BinaryExpr:
		return c.classifyBinary(e, ctx)

	default:
		return MaybeNull, nil
	}
}

// classifyBinary implements the "add expression" row of §4.3. Go has neither `??` nor `?:` as
// binary operators, so the coalesce and ternary cases are never reached through *ast.BinaryExpr
// in this retargeting: coalesce is a call (see classifyCall), and ternary is an if/else assigning
// a common variable - its NotNull-iff-both-branches-NotNull property falls directly out of
// flow.Analysis's ordinary branch-merge (intersecting the two branches' safe sets) with no
// separate ternary case needed anywhere in Classify. This method only needs to handle Go's actual
// binary operators.
func (c *Classifier) classifyBinary(e *ast.BinaryExpr, _ *Context) (ValueType, error) {
	if e.Op == token.ADD {
		if util.ExprBarsNilness(c.Pass, e) {
			return NotNull, nil
		}
	}
	return MaybeNull, nil
}

// classifyAwait implements §4.3.3: a channel receive `<-ch` classifies based on the channel's
// static element type - unlike the source language's compiler-generated awaiter, Go's channel
// element type already IS the unwrapped T, so no further Task<T>-style probing is needed.
func (c *Classifier) classifyAwait(e *ast.UnaryExpr, inner ast.Expr, _ *Context) (ValueType, error) {
	_ = e
	t := c.Pass.TypesInfo.TypeOf(inner)
	if t == nil {
		return MaybeNull, nil
	}
	chanType, ok := t.Underlying().(*types.Chan)
	if !ok {
		return MaybeNull, nil
	}
	if util.TypeBarsNilness(chanType.Elem()) {
		return NotNull, nil
	}
	return MaybeNull, nil
}

// classifyMember implements the "member access" row: classify the member's name, i.e., treat the
// resolved field/method the same way an identifier use of it would be classified.
func (c *Classifier) classifyMember(sel *ast.SelectorExpr, ctx *Context) (ValueType, error) {
	obj := c.Pass.TypesInfo.Uses[sel.Sel]
	if obj == nil {
		return MaybeNull, nil
	}
	switch o := obj.(type) {
	case *types.Var:
		if v := c.Reader.Field(o); v.NotNullLike() {
			ctx.HasNotNullAttribute = true
			return NotNull, nil
		}
		return MaybeNull, nil
	case *types.Func:
		// A bare method value (not called) - recognized non-null if annotated or known, the same
		// as §4.3.1's "other symbols" rule.
		if fn, ok := obj.(*types.Func); ok {
			if c.Reader.FuncResult(fn).NotNullLike() {
				ctx.HasNotNullAttribute = true
				return NotNull, nil
			}
			if c.KB.IsKnownNonNullMethod(fn) || c.KB.IsKnownNonNullProperty(fn) {
				return NotNull, nil
			}
		}
		return MaybeNull, nil
	default:
		return MaybeNull, nil
	}
}

// classifyIdent implements §4.3.1.
func (c *Classifier) classifyIdent(ident *ast.Ident, ctx *Context) (ValueType, error) {
	obj := c.Pass.TypesInfo.Uses[ident]
	if obj == nil {
		obj = c.Pass.TypesInfo.Defs[ident]
	}
	v, ok := obj.(*types.Var)
	if !ok {
		// Not a variable - a type name, package name, constant, or function name used as a bare
		// value. Constants of string/interface type aren't modeled further; conservatively
		// MaybeNull unless the type itself bars nilness.
		if util.ExprBarsNilness(c.Pass, ident) {
			return NotNull, nil
		}
		return MaybeNull, nil
	}

	if v.IsField() {
		if c.Reader.Field(v).NotNullLike() {
			ctx.HasNotNullAttribute = true
			return NotNull, nil
		}
		return MaybeNull, nil
	}

	if v.IsField() == false && v.Parent() != nil && isForEachLocal(ident, c.Pass) {
		return NotNull, nil
	}

	if isParam, fn, idx := c.paramOf(ident, v); isParam {
		return c.classifyParam(ident, v, fn, idx, ctx)
	}

	// Plain local variable: MaybeNull by default, unless the flow analyzer can prove it assigned
	// non-null at this use (spec's classifier/flow-analyzer interaction).
	if c.Flow != nil && c.Flow.IsAlwaysAssignedNotNull(ident, ident.Pos()) {
		return NotNull, nil
	}
	return MaybeNull, nil
}

// isForEachLocal reports whether ident names a local variable introduced as the loop variable of
// a range-over clause - the Go realization of spec's "IsForEach" local-symbol property. A missing
// enclosing range clause is treated conservatively as false, exactly as spec directs for a
// missing IsForEach property. When the ranged-over expression is itself a function value (a Go
// 1.23 range-over-func loop), typeshelper.IsIterType confirms it is actually iterator-shaped
// before the loop variable is trusted - a defensive check mirroring spec's "treat a missing
// property conservatively as false" stance, since nothing else about a RangeStmt's syntax
// distinguishes a well-formed iterator from one the type checker would have rejected.
func isForEachLocal(ident *ast.Ident, pass *analysis.Pass) bool {
	obj := pass.TypesInfo.ObjectOf(ident)
	if obj == nil {
		return false
	}
	for _, f := range pass.Files {
		found := false
		ast.Inspect(f, func(n ast.Node) bool {
			if found {
				return false
			}
			rs, ok := n.(*ast.RangeStmt)
			if !ok {
				return true
			}
			if !idDefines(rs.Key, obj, pass) && !idDefines(rs.Value, obj, pass) {
				return true
			}
			if t := pass.TypesInfo.TypeOf(rs.X); t != nil {
				if _, isFuncType := t.Underlying().(*types.Signature); isFuncType && !typeshelper.IsIterType(t) {
					return true
				}
			}
			found = true
			return true
		})
		if found {
			return true
		}
	}
	return false
}

func idDefines(e ast.Expr, obj types.Object, pass *analysis.Pass) bool {
	id, ok := e.(*ast.Ident)
	if !ok {
		return false
	}
	return pass.TypesInfo.Defs[id] == obj
}

// paramOf reports whether v is a function/method parameter, and if so the enclosing *types.Func
// and the parameter's index.
func (c *Classifier) paramOf(_ *ast.Ident, v *types.Var) (bool, *types.Func, int) {
	for _, f := range c.Pass.Files {
		var result *types.Func
		var idx = -1
		ast.Inspect(f, func(n ast.Node) bool {
			if result != nil {
				return false
			}
			fd, ok := n.(*ast.FuncDecl)
			if !ok {
				return true
			}
			fn, ok := c.Pass.TypesInfo.Defs[fd.Name].(*types.Func)
			if !ok {
				return true
			}
			sig := fn.Type().(*types.Signature)
			for i := 0; i < sig.Params().Len(); i++ {
				if sig.Params().At(i) == v {
					result, idx = fn, i
					return false
				}
			}
			return true
		})
		if result != nil {
			return true, result, idx
		}
	}
	return false, nil, -1
}

// classifyParam implements §4.3.1's parameter rules.
func (c *Classifier) classifyParam(ident *ast.Ident, v *types.Var, fn *types.Func, idx int, ctx *Context) (ValueType, error) {
	// Implicit value parameter of a setter: the sole parameter of a method named SetX.
	if isSetterImplicitParam(fn, idx) {
		if c.Reader.FuncParam(fn, v.Name()).NotNullLike() {
			ctx.HasNotNullAttribute = true
			return NotNull, nil
		}
		return MaybeNull, nil
	}

	if c.Reader.FuncParam(fn, v.Name()).NotNullLike() {
		ctx.HasNotNullAttribute = true
		return NotNull, nil
	}

	if c.Flow != nil && c.Flow.IsAlwaysAssignedNotNull(ident, ident.Pos()) {
		return NotNull, nil
	}
	return MaybeNull, nil
}

func isSetterImplicitParam(fn *types.Func, idx int) bool {
	if idx != 0 {
		return false
	}
	sig := fn.Type().(*types.Signature)
	if sig.Recv() == nil || sig.Params().Len() != 1 {
		return false
	}
	name := fn.Name()
	return len(name) > 3 && name[:3] == "Set"
}

// classifyCall implements §4.3.2 (invocations), plus the coalesce and await-method retargetings
// from SPEC_FULL.md.
func (c *Classifier) classifyCall(call *ast.CallExpr, ctx *Context) (ValueType, error) {
	if ok, inner := asTypeConversion(call, c.Pass.TypesInfo); ok {
		return c.Classify(inner, ctx)
	}
	if ok, b := asCoalesceCall(call, c.Pass.TypesInfo); ok {
		underlying, err := Underlying(b, c.Pass.TypesInfo)
		if err != nil {
			return MaybeNull, err
		}
		return c.Classify(underlying, ctx)
	}
	if inner, ok := asAwaitMethodCall(call, c.Pass.TypesInfo); ok {
		return c.Classify(inner, ctx)
	}

	fn := knownsymbols.FuncObj(call, c.Pass.TypesInfo)
	if fn == nil {
		return MaybeNull, nil
	}
	if c.Reader.FuncResult(fn).NotNullLike() || c.KB.IsKnownNonNullMethod(fn) || c.KB.IsKnownNonNullProperty(fn) {
		ctx.HasNotNullAttribute = true
		return NotNull, nil
	}
	// Return type is a value type (cannot be nil at all).
	sig := fn.Type().(*types.Signature)
	if sig.Results().Len() > 0 && util.TypeBarsNilness(sig.Results().At(0).Type()) {
		return NotNull, nil
	}
	return MaybeNull, nil
}

// asTypeConversion reports whether call is a type-conversion call T(x) rather than a function
// call, returning the converted expression if so.
func asTypeConversion(call *ast.CallExpr, info *types.Info) (bool, ast.Expr) {
	if len(call.Args) != 1 {
		return false, nil
	}
	tv, ok := info.Types[call.Fun]
	if !ok || !tv.IsType() {
		return false, nil
	}
	return true, call.Args[0]
}

// asCoalesceCall reports whether call invokes the ambient coalesce.Coalesce helper, returning its
// second argument (the fallback, which SPEC_FULL.md's retargeting of `a ?? b` classifies).
func asCoalesceCall(call *ast.CallExpr, info *types.Info) (bool, ast.Expr) {
	if len(call.Args) != 2 {
		return false, nil
	}
	fn := knownsymbols.FuncObj(call, info)
	if fn == nil || fn.Pkg() == nil {
		return false, nil
	}
	if fn.Name() == "Coalesce" && fn.Pkg().Path() == config.PkgPathPrefix+"/internal/coalesce" {
		return true, call.Args[1]
	}
	return false, nil
}

// asAwaitMethodCall reports whether call is `<future>.Wait()`, `<future>.Result()`, or
// `<future>.ConfigureAwait(...)` on the ambient future.Future type (matched by method name and by
// the declaring package's path, as asCoalesceCall does), and if so returns the expression
// classify should recurse into.
func asAwaitMethodCall(call *ast.CallExpr, info *types.Info) (ast.Expr, bool) {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return nil, false
	}
	fn := knownsymbols.FuncObj(call, info)
	if fn == nil || fn.Pkg() == nil || fn.Pkg().Path() != config.PkgPathPrefix+"/internal/future" {
		return nil, false
	}
	switch fn.Name() {
	case "ConfigureAwait":
		// Strip it: classify as if the receiver's Wait/Result had been called directly.
		return sel.X, true
	case "Wait", "Result":
		return sel.X, true
	default:
		return nil, false
	}
}
