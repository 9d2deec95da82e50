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

// A GuardID is a unique token identifying a single guarded region - the statements that execute
// only because some earlier condition proved a value non-null (an `if x != nil` branch, an
// `isnullcheck`-annotated call, or the fallthrough after a guard clause that returns/panics on
// null). GuardIDs are canonically tied to the ast.Expr whose evaluation established them, via the
// ExprGuardMap accumulated in their generator.
type GuardID int

// An ExprGuardMap maps the AST node that established a guard (typically the condition of an if
// statement, or the receiver of a checknull/isnullcheck call) to the GuardID naming it.
type ExprGuardMap = map[ast.Expr]GuardID

// A GuardIDGenerator is a stateful object used to mint fresh, unique GuardIDs while a method body
// is walked. It also records which expression established each one, producing an ExprGuardMap
// that the caller can later use to explain *why* a target was considered non-null at a given
// diagnostic site.
// nonnil(exprGuardMap)
type GuardIDGenerator struct {
	last          GuardID
	exprGuardMap  ExprGuardMap
}

// NewGuardIDGenerator returns a fresh GuardIDGenerator.
func NewGuardIDGenerator() *GuardIDGenerator {
	return &GuardIDGenerator{
		last:         -1,
		exprGuardMap: make(ExprGuardMap),
	}
}

// Next mints the next unused GuardID, associating it with expr as the condition that established it.
func (g *GuardIDGenerator) Next(expr ast.Expr) GuardID {
	next := g.last + 1
	g.last = next
	g.exprGuardMap[expr] = next
	return next
}

// ExprGuardMap returns the underlying ExprGuardMap accumulated so far.
func (g *GuardIDGenerator) ExprGuardMap() ExprGuardMap {
	return g.exprGuardMap
}

// Eq compares two GuardIDs for equality.
func (g GuardID) Eq(other GuardID) bool {
	return g == other
}

// A GuardSet is the set of GuardIDs active (i.e., proven to hold) at a given program point. An
// empty GuardSet that is still non-nil represents "no guards apply here", as opposed to a nil
// GuardSet which callers should never construct directly - use NoGuards.
type GuardSet map[GuardID]bool

// IsEmpty returns true if the GuardSet has no active guards.
func (g GuardSet) IsEmpty() bool {
	return len(g) == 0
}

// Add statefully adds one or more GuardIDs to the GuardSet and returns it for chaining.
// nonnil(result 0)
func (g GuardSet) Add(guards ...GuardID) GuardSet {
	for _, guard := range guards {
		g[guard] = true
	}
	return g
}

// Remove statefully removes one or more GuardIDs from the GuardSet and returns it for chaining.
// nonnil(result 0)
func (g GuardSet) Remove(guards ...GuardID) GuardSet {
	for _, guard := range guards {
		delete(g, guard)
	}
	return g
}

// Contains returns true iff the GuardSet contains the given GuardID.
func (g GuardSet) Contains(id GuardID) bool {
	return g[id]
}

// SubsetOf returns true iff g is a subset of other.
// nonnil(other)
func (g GuardSet) SubsetOf(other GuardSet) bool {
	for guard := range g {
		if !other.Contains(guard) {
			return false
		}
	}
	return true
}

// Union returns a new GuardSet holding every GuardID present in g or any of others, without
// modifying any of its arguments.
// nonnil(result 0)
func (g GuardSet) Union(others ...GuardSet) GuardSet {
	out := make(GuardSet)
	for guard := range g {
		out.Add(guard)
	}
	for _, other := range others {
		for guard := range other {
			out.Add(guard)
		}
	}
	return out
}

// Intersection returns a new GuardSet holding only the GuardIDs present in g and every one of
// others, without modifying any of its arguments.
// nonnil(others)
func (g GuardSet) Intersection(others ...GuardSet) GuardSet {
	out := g.Union(others...)
checkingOut:
	for guard := range out {
		if !g.Contains(guard) {
			out.Remove(guard)
			continue checkingOut
		}
		for _, other := range others {
			if !other.Contains(guard) {
				out.Remove(guard)
				continue checkingOut
			}
		}
	}
	return out
}

// Eq returns true iff g and other contain exactly the same GuardIDs.
// nonnil(other)
func (g GuardSet) Eq(other GuardSet) bool {
	return g.SubsetOf(other) && other.SubsetOf(g)
}

// Copy returns an independent copy of g.
// nonnil(result 0)
func (g GuardSet) Copy() GuardSet {
	return g.Union(nil)
}

// NoGuards returns a fresh, empty GuardSet - used at the entry of a method body, where no guard
// has yet been established.
func NoGuards() GuardSet {
	return make(GuardSet)
}
