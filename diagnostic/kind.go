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

package diagnostic

import "go/token"

// Kind is one of the fixed diagnostic kinds this analyzer ever reports, per §6's catalog.
type Kind int

const (
	// NullAssignment: a possibly-null value flows into a NotNull/CheckNull sink.
	NullAssignment Kind = iota
	// AssignmentAfterCondition: a target proved non-null by a guard is later reassigned on some path.
	AssignmentAfterCondition
	// AssignmentAfterConstraint: an assignment to a target occurs syntactically after a
	// Constraint.NotNull(target) call, with a RHS not provably NotNull.
	AssignmentAfterConstraint
	// UnneededNullCheck: a null check/coalesce/conditional-access applied to a provably non-null symbol.
	UnneededNullCheck
	// UnneededConstraint: a Constraint.NotNull call on a symbol already annotated NotNull/CheckNull.
	UnneededConstraint
	// InvalidConstraint: a Constraint.NotNull call whose argument is not a direct member or a
	// lambda returning one.
	InvalidConstraint
	// PropagateNotNullInCtors: a constructor chain call passes a possibly-null value to a NotNull parameter.
	PropagateNotNullInCtors
	// NotNullAsRefParameter: a NotNull/CheckNull symbol is passed as a by-reference out/ref parameter.
	NotNullAsRefParameter
	// ParseFailure: the analyzer encountered an expression shape it could not classify.
	ParseFailure
)

func (k Kind) String() string {
	switch k {
	case NullAssignment:
		return "NullAssignment"
	case AssignmentAfterCondition:
		return "AssignmentAfterCondition"
	case AssignmentAfterConstraint:
		return "AssignmentAfterConstraint"
	case UnneededNullCheck:
		return "UnneededNullCheck"
	case UnneededConstraint:
		return "UnneededConstraint"
	case InvalidConstraint:
		return "InvalidConstraint"
	case PropagateNotNullInCtors:
		return "PropagateNotNullInCtors"
	case NotNullAsRefParameter:
		return "NotNullAsRefParameter"
	case ParseFailure:
		return "ParseFailure"
	default:
		return "Unknown"
	}
}

// Diagnostic is one reported finding: a kind, its location, and a human-readable message.
type Diagnostic struct {
	Kind    Kind
	Pos     token.Pos
	Message string
}
