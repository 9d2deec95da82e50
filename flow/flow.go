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

// Package flow implements the method-local, flow-sensitive analysis: it walks a method body once
// to build an ordered picture of which targets are known non-null at each program point, taking
// into account guarded regions (if/early-return idioms, is-null-check predicates) and assignments
// made through a constraint-asserting call. It answers two questions for the rest of the
// pipeline: "is this expression always assigned non-null by the time control reaches it"
// (consulted by classify through the narrow classify.FlowQuerier interface) and "what is the full
// status of this expression at this point" (consulted directly by the diagnostic emitter).
//
// The walk merges branches by set intersection at join points exactly the way a standard
// "safe on every path" dataflow analysis would - spec's "compute the set of paths... if safe[key]
// is true on every path" description is realized here without literal path enumeration. Loop
// bodies are analyzed once against the safe set that holds before the loop, rather than to a
// fixpoint; this is a deliberate simplification consistent with spec's explicit exclusion of
// interprocedural and alias analysis, and is noted in DESIGN.md.
package flow

import (
	"go/ast"
	"go/token"

	"github.com/nullcontract/nnanalyzer/annotation"
	"github.com/nullcontract/nnanalyzer/classify"
	"github.com/nullcontract/nnanalyzer/knownsymbols"
	"golang.org/x/tools/go/analysis"
)

// ExpressionStatus is the result of §4.5.1's IsAlwaysAssigned algorithm.
type ExpressionStatus int

const (
	// NotAssigned is the default: nothing proves the target non-null at this point.
	NotAssigned ExpressionStatus = iota
	// Assigned means every path to this point leaves the target proven non-null.
	Assigned
	// ReassignedAfterCondition means the target was proven non-null at an earlier point but a
	// subsequent reassignment (on some path reaching this point) invalidated that guarantee.
	ReassignedAfterCondition
	// AssignedWithUnneededConstraint means the target is proved NotNull at face value by the
	// classifier and also still has a live constraint call for it.
	AssignedWithUnneededConstraint
)

func (s ExpressionStatus) String() string {
	switch s {
	case Assigned:
		return "Assigned"
	case ReassignedAfterCondition:
		return "ReassignedAfterCondition"
	case AssignedWithUnneededConstraint:
		return "AssignedWithUnneededConstraint"
	default:
		return "NotAssigned"
	}
}

// ConstraintViolation is one entry of §4.5.2's GetAssignmentsAfterConstraints: an assignment to a
// target that has an active constraint earlier in the flow, whose RHS is not provably NotNull.
type ConstraintViolation struct {
	Key string
	Pos token.Pos
}

// InvalidConstraintCall records a Constraint.NotNull(...) call whose argument shape spec's
// grammar does not recognize (not a direct member/identifier, nor a lambda returning one).
type InvalidConstraintCall struct {
	Pos token.Pos
}

type safeSet map[string]bool

func (s safeSet) copy() safeSet {
	out := make(safeSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// intersect returns the keys true in both a and b - the join-point merge for two branches.
func intersect(a, b safeSet) safeSet {
	out := make(safeSet)
	for k := range a {
		if b[k] {
			out[k] = true
		}
	}
	return out
}

// snapshot records the safe set and the set of keys ever proven safe earlier on this path, as of
// immediately before the statement at pos.
type snapshot struct {
	pos            token.Pos
	safe           safeSet
	everSafe       safeSet
	constraintLive safeSet
}

// Analysis is the method-local flow analysis for one function/method body. New walks the whole
// body up front; the caller keeps one Analysis per (pass, func).
type Analysis struct {
	pass       *analysis.Pass
	classifier *classify.Classifier
	// staticClassifier is a clone of classifier with Flow left nil, used wherever §4.5.1 needs
	// "classify at face value" (step 1) - using the Flow-aware classifier there would reenter
	// Status for the same (expr, point) pair it is itself trying to resolve.
	staticClassifier *classify.Classifier
	detector         *guardDetector

	snapshots []snapshot // ordered by pos, ascending

	guardGen     *GuardIDGenerator
	everyGuard   GuardSet
	guardForExpr map[token.Pos]GuardID // condition position -> GuardID, for diagnostic context

	constraintViolations []ConstraintViolation
	invalidConstraints   []InvalidConstraintCall
	hasConstraints       bool
	parseFailures        []*classify.ParseFailure
}

// New builds an Analysis for fn's body. classifier is used (and has its Flow field set to the
// returned Analysis) so that classification of assignment right-hand sides can itself consult
// flow facts, realizing the mutual recursion spec describes between the classifier and the
// flow analyzer without an import cycle.
func New(pass *analysis.Pass, reader *annotation.Reader, kb *knownsymbols.KnowledgeBase, classifier *classify.Classifier, fn *ast.FuncDecl) *Analysis {
	a := &Analysis{
		pass:             pass,
		classifier:       classifier,
		staticClassifier: &classify.Classifier{Pass: pass, Reader: reader, KB: kb},
		detector:         &guardDetector{pass: pass, reader: reader, kb: kb},
		guardGen:         NewGuardIDGenerator(),
		everyGuard:       NoGuards(),
		guardForExpr:     make(map[token.Pos]GuardID),
	}
	classifier.Flow = a

	if fn.Body != nil {
		a.walkStmts(fn.Body.List, safeSet{}, safeSet{}, safeSet{})
	}
	return a
}

func (a *Analysis) record(pos token.Pos, safe, everSafe, constraintLive safeSet) {
	a.snapshots = append(a.snapshots, snapshot{pos: pos, safe: safe, everSafe: everSafe, constraintLive: constraintLive})
}

// snapshotBefore returns the latest recorded snapshot at or before pos, or a zero snapshot if
// pos precedes everything recorded (e.g. a parameter used in its own default expression).
func (a *Analysis) snapshotBefore(pos token.Pos) snapshot {
	var best snapshot
	found := false
	for _, s := range a.snapshots {
		if s.pos <= pos {
			best = s
			found = true
			continue
		}
		break
	}
	if !found {
		return snapshot{safe: safeSet{}, everSafe: safeSet{}, constraintLive: safeSet{}}
	}
	return best
}

// walkStmts processes stmts in order, threading the safe/everSafe/constraintLive sets through
// assignments, guards, and constraint calls, and returns the resulting sets after the last
// statement.
func (a *Analysis) walkStmts(stmts []ast.Stmt, safe, everSafe, constraintLive safeSet) (safeSet, safeSet, safeSet) {
	for _, stmt := range stmts {
		a.record(stmt.Pos(), safe, everSafe, constraintLive)
		safe, everSafe, constraintLive = a.walkStmt(stmt, safe, everSafe, constraintLive)
	}
	return safe, everSafe, constraintLive
}

func (a *Analysis) walkStmt(stmt ast.Stmt, safe, everSafe, constraintLive safeSet) (safeSet, safeSet, safeSet) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		return a.walkAssign(s, safe, everSafe, constraintLive)
	case *ast.ExprStmt:
		return a.walkExprStmt(s, safe, everSafe, constraintLive)
	case *ast.IfStmt:
		return a.walkIf(s, safe, everSafe, constraintLive)
	case *ast.BlockStmt:
		return a.walkStmts(s.List, safe, everSafe, constraintLive)
	case *ast.ForStmt:
		// Conservative: the body may execute zero times, so its effects do not persist past the
		// loop. Still walked (with its own copies) so assignments/constraints inside it are
		// recorded for queries made from within the loop body itself.
		a.walkStmts(bodyOf(s.Body), safe.copy(), everSafe.copy(), constraintLive.copy())
		return safe, everSafe, constraintLive
	case *ast.RangeStmt:
		a.walkStmts(bodyOf(s.Body), safe.copy(), everSafe.copy(), constraintLive.copy())
		return safe, everSafe, constraintLive
	case *ast.SwitchStmt:
		return a.walkSwitch(s, safe, everSafe, constraintLive)
	default:
		return safe, everSafe, constraintLive
	}
}

func bodyOf(b *ast.BlockStmt) []ast.Stmt {
	if b == nil {
		return nil
	}
	return b.List
}

func (a *Analysis) walkSwitch(s *ast.SwitchStmt, safe, everSafe, constraintLive safeSet) (safeSet, safeSet, safeSet) {
	// Each case clause is analyzed against the pre-switch sets; the post-switch safe set is the
	// intersection across all clauses (a switch with no default does not guarantee any clause
	// ran, so the pre-switch safe set itself is folded into the intersection too). everSafe and
	// constraintLive are returned as they were before the switch.
	var merged safeSet
	hasDefault := false
	for _, clause := range s.Body.List {
		cc, ok := clause.(*ast.CaseClause)
		if !ok {
			continue
		}
		if cc.List == nil {
			hasDefault = true
		}
		out, _, _ := a.walkStmts(cc.Body, safe.copy(), everSafe.copy(), constraintLive.copy())
		if merged == nil {
			merged = out
		} else {
			merged = intersect(merged, out)
		}
	}
	if !hasDefault {
		if merged == nil {
			merged = safe
		} else {
			merged = intersect(merged, safe)
		}
	}
	return merged, everSafe, constraintLive
}

func (a *Analysis) walkAssign(s *ast.AssignStmt, safe, everSafe, constraintLive safeSet) (safeSet, safeSet, safeSet) {
	safe, everSafe, constraintLive = safe.copy(), everSafe.copy(), constraintLive.copy()
	if len(s.Lhs) != len(s.Rhs) {
		// Multi-value call result destructuring: not tracked, matching spec's "element accesses,
		// method calls, and casts break key identity" spirit - destructured results have no
		// single classifiable expression.
		return safe, everSafe, constraintLive
	}
	for i, lhs := range s.Lhs {
		key, ok := TargetKey(lhs)
		if !ok {
			continue
		}
		val, err := a.classifier.Classify(s.Rhs[i], &classify.Context{})
		if err != nil {
			if pf, ok := err.(*classify.ParseFailure); ok {
				a.parseFailures = append(a.parseFailures, pf)
			}
			continue
		}
		if constraintLive[key] && val != classify.NotNull {
			a.constraintViolations = append(a.constraintViolations, ConstraintViolation{Key: key, Pos: s.Pos()})
		}
		switch val {
		case classify.NotNull:
			safe[key] = true
			everSafe[key] = true
		default:
			safe[key] = false
		}
		constraintLive[key] = false
	}
	return safe, everSafe, constraintLive
}

func (a *Analysis) walkExprStmt(s *ast.ExprStmt, safe, everSafe, constraintLive safeSet) (safeSet, safeSet, safeSet) {
	call, ok := s.X.(*ast.CallExpr)
	if !ok {
		return safe, everSafe, constraintLive
	}
	key, isConstraint, validShape := a.detector.constraintCall(call)
	if !isConstraint {
		return safe, everSafe, constraintLive
	}
	a.hasConstraints = true
	if !validShape {
		a.invalidConstraints = append(a.invalidConstraints, InvalidConstraintCall{Pos: s.Pos()})
		return safe, everSafe, constraintLive
	}
	safe = safe.copy()
	everSafe = everSafe.copy()
	constraintLive = constraintLive.copy()
	safe[key] = true
	everSafe[key] = true
	constraintLive[key] = true
	return safe, everSafe, constraintLive
}

func (a *Analysis) walkIf(s *ast.IfStmt, safe, everSafe, constraintLive safeSet) (safeSet, safeSet, safeSet) {
	thenSafe, thenEver, thenConstraint := safe.copy(), everSafe.copy(), constraintLive.copy()
	if key, ok := a.detector.positiveGuard(s.Cond); ok {
		thenSafe[key] = true
		thenEver[key] = true
		a.mintGuard(s.Cond)
	}
	thenSafe, thenEver, thenConstraint = a.walkStmts(s.Body.List, thenSafe, thenEver, thenConstraint)

	var elseSafe, elseEver, elseConstraint safeSet
	switch els := s.Else.(type) {
	case *ast.BlockStmt:
		elseSafe, elseEver, elseConstraint = a.walkStmts(els.List, safe.copy(), everSafe.copy(), constraintLive.copy())
	case *ast.IfStmt:
		elseSafe, elseEver, elseConstraint = a.walkIf(els, safe.copy(), everSafe.copy(), constraintLive.copy())
	default:
		elseSafe, elseEver, elseConstraint = safe.copy(), everSafe.copy(), constraintLive.copy()
	}

	mergedSafe := intersect(thenSafe, elseSafe)
	mergedEver := intersect(thenEver, elseEver)
	mergedConstraint := intersect(thenConstraint, elseConstraint)

	// Early-exit idiom: `if x == nil { return ... }` (no else) makes x safe for the rest of the
	// enclosing statement list.
	if s.Else == nil {
		if key, ok := a.detector.negativeGuard(s.Cond); ok && terminates(s.Body) {
			mergedSafe[key] = true
			mergedEver[key] = true
			a.mintGuard(s.Cond)
		}
	}

	return mergedSafe, mergedEver, mergedConstraint
}

// mintGuard records that cond established a guarded region, minting a fresh GuardID for it if one
// was not already minted for this exact condition node (a condition is visited at most once
// during the single walk, but defensive against future re-entrant callers).
func (a *Analysis) mintGuard(cond ast.Expr) GuardID {
	if id, ok := a.guardForExpr[cond.Pos()]; ok {
		return id
	}
	id := a.guardGen.Next(cond)
	a.guardForExpr[cond.Pos()] = id
	a.everyGuard = a.everyGuard.Add(id)
	return id
}

// GuardCount returns the number of distinct guarded regions recognized in the body - exposed for
// diagnostic message context and for report tooling summarizing how many guard clauses a method
// relies on.
func (a *Analysis) GuardCount() int {
	return len(a.guardGen.ExprGuardMap())
}

// Guards returns the full set of GuardIDs established anywhere in the body.
func (a *Analysis) Guards() GuardSet {
	return a.everyGuard.Copy()
}

func unionKeys(a, b safeSet) safeSet {
	out := make(safeSet, len(a)+len(b))
	for k, v := range a {
		if v {
			out[k] = true
		}
	}
	for k, v := range b {
		if v {
			out[k] = true
		}
	}
	return out
}

// IsAlwaysAssignedNotNull implements classify.FlowQuerier: a narrow boolean view of Status used
// while classifying identifiers/parameters.
func (a *Analysis) IsAlwaysAssignedNotNull(expr ast.Expr, at token.Pos) bool {
	status, _ := a.Status(expr, at)
	return status == Assigned || status == AssignedWithUnneededConstraint
}

// Status implements §4.5.1's IsAlwaysAssigned(expr, point) in full.
func (a *Analysis) Status(expr ast.Expr, at token.Pos) (ExpressionStatus, error) {
	if val, err := a.staticClassifier.Classify(expr, &classify.Context{}); err == nil && val == classify.NotNull {
		snap := a.snapshotBefore(at)
		key, ok := TargetKey(expr)
		if ok && snap.constraintLive[key] {
			return AssignedWithUnneededConstraint, nil
		}
		return Assigned, nil
	} else if err != nil {
		return NotAssigned, err
	}

	key, ok := TargetKey(expr)
	if !ok {
		return NotAssigned, nil
	}

	snap := a.snapshotBefore(at)
	if snap.safe[key] {
		return Assigned, nil
	}
	if snap.everSafe[key] {
		return ReassignedAfterCondition, nil
	}
	return NotAssigned, nil
}

// HasConstraints reports whether any Constraint.NotNull call was encountered in the body.
func (a *Analysis) HasConstraints() bool { return a.hasConstraints }

// GetAssignmentsAfterConstraints implements §4.5.2.
func (a *Analysis) GetAssignmentsAfterConstraints() []ConstraintViolation {
	return a.constraintViolations
}

// InvalidConstraintCalls returns every Constraint.NotNull call whose argument shape was not a
// direct member/identifier or a lambda returning one.
func (a *Analysis) InvalidConstraintCalls() []InvalidConstraintCall {
	return a.invalidConstraints
}

// ParseFailures returns every unrecognized expression shape encountered while classifying
// assignment right-hand sides during the walk.
func (a *Analysis) ParseFailures() []*classify.ParseFailure {
	return a.parseFailures
}
