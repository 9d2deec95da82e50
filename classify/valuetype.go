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

// Package classify maps any Go expression to one of three possible nullness values by recursive
// structural inspection, consulting the type-checker's resolved types, this analyzer's own
// nonnil/checknull annotations, and a small knowledge base of standard-library members known to
// never return nil.
package classify

// ValueType is the nullness this analyzer assigns to an expression.
type ValueType int

const (
	// MaybeNull is the default for any expression shape this package does not specifically
	// recognize as provably NotNull or provably Null.
	MaybeNull ValueType = iota
	// NotNull means the expression is guaranteed to never evaluate to nil.
	NotNull
	// Null means the expression is the nil value itself (a nil literal, or a nil-valued
	// identifier produced by the classifier's own synthesis, never user's annotation).
	Null
)

// String implements fmt.Stringer for readable diagnostics and test failures.
func (v ValueType) String() string {
	switch v {
	case NotNull:
		return "NotNull"
	case Null:
		return "Null"
	default:
		return "MaybeNull"
	}
}
