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

// Package diagnostic walks each analyzed function body, consulting classify and flow at the four
// syntactic positions spec §4.6 names, and turns what it learns into the fixed catalog of
// diagnostics in kind.go. It also hosts the nolint-comment reader (nolint.go) that every other
// diagnostic is filtered against before being reported.
package diagnostic

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"

	"github.com/nullcontract/nnanalyzer/annotation"
	"github.com/nullcontract/nnanalyzer/classify"
	"github.com/nullcontract/nnanalyzer/config"
	"github.com/nullcontract/nnanalyzer/flow"
	"github.com/nullcontract/nnanalyzer/knownsymbols"
	"github.com/nullcontract/nnanalyzer/util"
	"github.com/nullcontract/nnanalyzer/util/analysishelper"
	"golang.org/x/tools/go/analysis"
)

const _emitterDoc = "Walk each function body and report null-contract diagnostics, consulting the" +
	" expression classifier and the method-local flow analyzer at every syntactic position that" +
	" can leak a possibly-null value into a NotNull/CheckNull sink."

// Analyzer produces the full list of diagnostics for one package, filtered against the nolint
// ranges NoLintAnalyzer exports (including ranges inherited from upstream packages).
var Analyzer = &analysis.Analyzer{
	Name:       "nnanalyzer_diagnostic",
	Doc:        _emitterDoc,
	Run:        analysishelper.WrapRun(run),
	Requires:   []*analysis.Analyzer{config.Analyzer, annotation.Analyzer, NoLintAnalyzer},
	ResultType: reflect.TypeOf((*analysishelper.Result[[]Diagnostic])(nil)),
}

func run(p *analysis.Pass) ([]Diagnostic, error) {
	pass := analysishelper.NewEnhancedPass(p)

	conf := pass.ResultOf[config.Analyzer].(*config.Config)
	if !conf.IsPkgInScope(pass.Pkg.Path()) {
		return nil, nil
	}

	reader := pass.ResultOf[annotation.Analyzer].(*annotation.Reader)

	nolintResult := pass.ResultOf[NoLintAnalyzer].(*analysishelper.Result[[]Range])
	if nolintResult.Err != nil {
		return nil, nolintResult.Err
	}
	nolint := nolintResult.Res

	kb := knownsymbols.New()
	classifier := &classify.Classifier{Pass: pass.Pass, Reader: reader, KB: kb}

	e := &emitter{pass: pass.Pass, reader: reader, kb: kb, classifier: classifier, analyses: make(map[*ast.FuncDecl]*flow.Analysis)}

	for _, f := range pass.Files {
		if !conf.IsFileInScope(f) {
			continue
		}
		e.collectFuncDecls(f)
	}
	e.run()

	return filterNoLint(pass.Fset, e.diagnostics, nolint), nil
}

// emitter is the per-package worker: it builds (and memoizes) one flow.Analysis per function body,
// and runs the four §4.6 checks over every call/assignment/condition it finds.
type emitter struct {
	pass       *analysis.Pass
	reader     *annotation.Reader
	kb         *knownsymbols.KnowledgeBase
	classifier *classify.Classifier

	analyses    map[*ast.FuncDecl]*flow.Analysis
	funcDecls   []*ast.FuncDecl
	diagnostics []Diagnostic
}

// collectFuncDecls gathers every top-level function/method declaration with a body from f. All
// files of the package are collected before run walks any of them, so each function is visited
// exactly once regardless of how many files the package spans.
func (e *emitter) collectFuncDecls(f *ast.File) {
	for _, decl := range f.Decls {
		if fd, ok := decl.(*ast.FuncDecl); ok && fd.Body != nil {
			e.funcDecls = append(e.funcDecls, fd)
		}
	}
}

func (e *emitter) run() {
	for _, fd := range e.funcDecls {
		a := e.analysisFor(fd)
		e.reportParseFailures(a)
		e.reportConstraintViolations(a)
		e.reportInvalidOrUnneededConstraints(fd, a)
		e.checkReturns(a, fd)
		ast.Inspect(fd.Body, func(n ast.Node) bool {
			switch node := n.(type) {
			case *ast.BinaryExpr:
				e.checkBinaryNullCheck(a, node)
			case *ast.CallExpr:
				e.checkCallArguments(a, fd, node)
				e.checkRefParameterEscape(node)
			case *ast.AssignStmt:
				e.checkAssignment(a, node)
			}
			return true
		})
	}
}

// analysisFor returns (building and memoizing on first use) the flow.Analysis for fd. Per-function
// memoization here mirrors the compute-if-absent discipline spec's concurrency model describes for
// the semantic-model cache; a single package's functions are walked sequentially by this analyzer
// so no additional locking is needed.
func (e *emitter) analysisFor(fd *ast.FuncDecl) *flow.Analysis {
	if a, ok := e.analyses[fd]; ok {
		return a
	}
	a := flow.New(e.pass, e.reader, e.kb, e.classifier, fd)
	e.analyses[fd] = a
	return a
}

func (e *emitter) report(kind Kind, pos token.Pos, format string, args ...any) {
	e.diagnostics = append(e.diagnostics, Diagnostic{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (e *emitter) reportParseFailures(a *flow.Analysis) {
	for _, pf := range a.ParseFailures() {
		e.report(ParseFailure, pf.Pos, "could not classify this expression (%s); treating the flows through it as unproven rather than guessing", pf.Kind)
	}
}

// reportConstraintViolations implements §4.5.2: an assignment after a live Constraint.NotNull call
// whose right-hand side does not itself classify NotNull.
func (e *emitter) reportConstraintViolations(a *flow.Analysis) {
	for _, v := range a.GetAssignmentsAfterConstraints() {
		e.report(AssignmentAfterConstraint, v.Pos, "%s was asserted non-null by a Constraint.NotNull call, then reassigned here with a value that is not provably non-null", v.Key)
	}
}

// reportInvalidOrUnneededConstraints walks the constraint calls directly (rather than through
// flow.Analysis's per-assignment bookkeeping) so that each Constraint.NotNull(...) call site gets
// exactly one UnneededConstraint/InvalidConstraint verdict based on its own shape and the target's
// static annotation, independent of how the flow analysis later treats the asserted value.
func (e *emitter) reportInvalidOrUnneededConstraints(fd *ast.FuncDecl, _ *flow.Analysis) {
	ast.Inspect(fd.Body, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		key, isConstraint, validShape := flow.DetectConstraintCall(e.pass, e.reader, e.kb, call)
		if !isConstraint {
			return true
		}
		if !validShape {
			e.report(InvalidConstraint, call.Pos(), "Constraint.NotNull's argument must be a direct field/identifier access, or a lambda returning one")
			return true
		}
		target := constraintTargetExpr(call)
		if target != nil && isAnnotatedNotNullLike(e.pass, e.reader, target) {
			e.report(UnneededConstraint, call.Pos(), "%s is already annotated non-null; this Constraint.NotNull call is redundant", key)
		}
		return true
	})
}

func constraintTargetExpr(call *ast.CallExpr) ast.Expr {
	if len(call.Args) != 1 {
		return nil
	}
	arg := call.Args[0]
	if lit, ok := arg.(*ast.FuncLit); ok {
		if len(lit.Body.List) != 1 {
			return nil
		}
		ret, ok := lit.Body.List[0].(*ast.ReturnStmt)
		if !ok || len(ret.Results) != 1 {
			return nil
		}
		return ret.Results[0]
	}
	return arg
}

// checkReturns covers a NotNull/CheckNull-annotated single-valued function result, the Go
// retargeting of spec's "`[NotNull] string f() { return null; }`" scenario: Go has no implicit
// return-value slot the way a C#-style property getter does, so a declared NotNull result is
// instead checked at every return statement in fd's own body. Nested func literals are not
// descended into - a closure's own return belongs to the closure's contract, not fd's.
func (e *emitter) checkReturns(a *flow.Analysis, fd *ast.FuncDecl) {
	fn, ok := e.pass.TypesInfo.Defs[fd.Name].(*types.Func)
	if !ok {
		return
	}
	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Results().Len() != 1 || !e.reader.FuncResult(fn).NotNullLike() {
		return
	}
	ast.Inspect(fd.Body, func(n ast.Node) bool {
		if _, ok := n.(*ast.FuncLit); ok {
			return false
		}
		ret, ok := n.(*ast.ReturnStmt)
		if !ok || len(ret.Results) != 1 {
			return true
		}
		e.checkSinkExpr(a, ret.Results[0], ret.Pos(), ret.Results[0].Pos(), nil, nil)
		return true
	})
}

// checkBinaryNullCheck implements the first of §4.6's four sites: an `x == nil`/`x != nil`
// comparison (which is also exactly the shape a retargeted conditional-access `a?.b` guard takes,
// see classify/underlying.go's doc comment) against a target whose flow status at the comparison
// is Assigned (NotNull at face value, or made safe on every path by an earlier guard or
// assignment) is a redundant check.
func (e *emitter) checkBinaryNullCheck(a *flow.Analysis, be *ast.BinaryExpr) {
	if be.Op != token.EQL && be.Op != token.NEQ {
		return
	}
	var target ast.Expr
	if util.IsLiteral(be.X, "nil") {
		target = be.Y
	} else if util.IsLiteral(be.Y, "nil") {
		target = be.X
	} else {
		return
	}
	status, err := a.Status(target, be.Pos())
	if err != nil {
		return // already reported as a ParseFailure from the walk that produced it
	}
	if status == flow.Assigned {
		e.report(UnneededNullCheck, be.Pos(), "this null check is unneeded; the checked value is already provably non-null here")
	}
}

// checkCallArguments implements the third of §4.6's sites: each argument passed to a
// NotNull/CheckNull-annotated parameter is checked against the flow analyzer.
func (e *emitter) checkCallArguments(a *flow.Analysis, fd *ast.FuncDecl, call *ast.CallExpr) {
	fn := knownsymbols.FuncObj(call, e.pass.TypesInfo)
	if fn == nil {
		return
	}
	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return
	}
	for i, arg := range call.Args {
		if sig.Variadic() && i >= sig.Params().Len()-1 {
			break
		}
		if i < 0 || i >= sig.Params().Len() {
			continue
		}
		param := sig.Params().At(i)
		if !e.reader.FuncParam(fn, param.Name()).NotNullLike() {
			continue
		}
		e.checkSinkExpr(a, arg, call.Pos(), arg.Pos(), fd, fn)
	}
}

// checkRefParameterEscape flags passing the address of a NotNull/CheckNull-annotated field or
// result as a call argument - the Go realization of spec's "NotNull symbol passed as a by-reference
// out/ref parameter" case. Go has no ref/out parameter keyword, but a function receiving `*T` can
// still assign through the pointer and silently violate the contract in a way this method-local
// analysis cannot observe once the call returns, so any such escape is worth flagging.
func (e *emitter) checkRefParameterEscape(call *ast.CallExpr) {
	for _, arg := range call.Args {
		addr, ok := arg.(*ast.UnaryExpr)
		if !ok || addr.Op != token.AND {
			continue
		}
		if isAnnotatedNotNullLike(e.pass, e.reader, addr.X) {
			e.report(NotNullAsRefParameter, arg.Pos(), "the address of a non-null-contracted value is passed here; a callee that reassigns through the pointer can violate the contract invisibly to this analysis")
		}
	}
}

// checkAssignment implements the fourth of §4.6's sites: assigning into a NotNull/CheckNull struct
// field is checked the same way as a call argument. Other assignment targets are not checked here.
func (e *emitter) checkAssignment(a *flow.Analysis, s *ast.AssignStmt) {
	if len(s.Lhs) != len(s.Rhs) {
		return
	}
	for i, lhs := range s.Lhs {
		if !e.lhsIsNotNullLike(lhs) {
			continue
		}
		e.checkSinkExpr(a, s.Rhs[i], s.Pos(), s.Rhs[i].Pos(), nil, nil)
	}
}

func (e *emitter) lhsIsNotNullLike(lhs ast.Expr) bool {
	sel, ok := lhs.(*ast.SelectorExpr)
	if !ok {
		// Bare identifier assignment targets (locals, package-level vars) are never annotation
		// sites in this grammar - only struct fields, function results, and parameters are.
		return false
	}
	v, ok := e.pass.TypesInfo.Uses[sel.Sel].(*types.Var)
	if !ok {
		return false
	}
	return e.reader.Field(v).NotNullLike()
}

// checkSinkExpr is the shared tail of the call-argument and assignment checks: classify the value
// flowing in, and if it isn't provably NotNull at face value, ask the flow analyzer for its status
// and map that status to a diagnostic kind (a genuinely safe status, Assigned or
// AssignedWithUnneededConstraint, reports nothing here - a redundant live constraint is instead
// caught once, at its own call site, by reportInvalidOrUnneededConstraints).
func (e *emitter) checkSinkExpr(a *flow.Analysis, value ast.Expr, reportPos, queryPos token.Pos, ctorCaller *ast.FuncDecl, callee *types.Func) {
	val, err := e.classifier.Classify(value, &classify.Context{})
	if err != nil {
		return
	}
	if val == classify.NotNull {
		return
	}

	status, err := a.Status(value, queryPos)
	if err != nil {
		return
	}
	switch status {
	case flow.Assigned, flow.AssignedWithUnneededConstraint:
		return
	case flow.ReassignedAfterCondition:
		e.report(AssignmentAfterCondition, reportPos, "this value was proven non-null by an earlier guard, but may have been reassigned since on some path")
	default:
		if isConstructorChain(ctorCaller, callee) {
			e.report(PropagateNotNullInCtors, reportPos, "a possibly-null value is passed to a non-null constructor parameter here")
			return
		}
		e.report(NullAssignment, reportPos, "a possibly-null value flows into a non-null-contracted target here")
	}
}

// isConstructorChain reports whether callee looks like another constructor (a New*-prefixed
// function) being called from within a constructor itself - the Go analog of spec's ctor
// initializer chaining (`: this(...)`/`: base(...)`), which Go has no direct syntax for.
func isConstructorChain(caller *ast.FuncDecl, callee *types.Func) bool {
	if caller == nil || callee == nil {
		return false
	}
	return hasNewPrefix(caller.Name.Name) && hasNewPrefix(callee.Name())
}

func hasNewPrefix(name string) bool {
	return len(name) > 3 && name[:3] == "New"
}

// isAnnotatedNotNullLike reports whether expr's resolved symbol (a field, a parameter, or a
// function/method value) carries a NotNull/CheckNull annotation - used at constraint-call sites
// to decide whether the constraint is redundant, and by checkRefParameterEscape.
func isAnnotatedNotNullLike(pass *analysis.Pass, reader *annotation.Reader, expr ast.Expr) bool {
	var ident *ast.Ident
	switch e := expr.(type) {
	case *ast.Ident:
		ident = e
	case *ast.SelectorExpr:
		ident = e.Sel
	default:
		return false
	}
	switch obj := pass.TypesInfo.Uses[ident].(type) {
	case *types.Var:
		return reader.Field(obj).NotNullLike() || reader.ParamVar(obj).NotNullLike()
	case *types.Func:
		return reader.FuncResult(obj).NotNullLike()
	default:
		return false
	}
}

// filterNoLint drops every diagnostic whose line falls within a recorded nolint range.
func filterNoLint(fset *token.FileSet, diagnostics []Diagnostic, ranges []Range) []Diagnostic {
	if len(ranges) == 0 {
		return diagnostics
	}
	var out []Diagnostic
	for _, d := range diagnostics {
		position := fset.Position(d.Pos)
		suppressed := false
		for _, r := range ranges {
			if r.Filename == position.Filename && position.Line >= r.From && position.Line <= r.To {
				suppressed = true
				break
			}
		}
		if !suppressed {
			out = append(out, d)
		}
	}
	return out
}
