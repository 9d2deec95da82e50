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

// Package knownsymbols hosts the knowledge base of standard-library (and a handful of
// widely-vendored third-party) functions and methods that this analyzer trusts without needing a
// `// nonnil(...)` directive: constructors that are documented to never return a nil pointer,
// interface, or error, and predicate functions whose truthy result proves one of their arguments
// non-nil. Every entry here is resolved defensively: a symbol this process cannot find (a
// different Go version, a vendored fork) simply never matches, and queries answer "unknown"
// rather than panicking.
package knownsymbols

import (
	"go/ast"
	"go/types"
	"regexp"
)

// funcKind distinguishes a top-level function from a method in the tables below, mirroring how a
// reduced extension-method call in other ecosystems must be normalized back to its original
// static definition before a knowledge-base lookup - in Go there is no such reduced form, since
// pass.TypesInfo.Uses already resolves a selector straight to its *types.Func, so no extra
// normalization step is required here.
type funcKind uint8

const (
	_func funcKind = iota
	_method
)

type funcSig struct {
	kind          funcKind
	pkgPathRegex  *regexp.Regexp
	funcNameRegex *regexp.Regexp
}

func (s *funcSig) matches(obj *types.Func) bool {
	if obj == nil || obj.Pkg() == nil {
		return false
	}
	if !s.funcNameRegex.MatchString(obj.Name()) {
		return false
	}
	recv := obj.Type().(*types.Signature).Recv()
	if (s.kind == _func && recv != nil) || (s.kind == _method && recv == nil) {
		return false
	}
	return s.pkgPathRegex.MatchString(obj.Pkg().Path())
}

// notNullFuncs lists functions and methods whose result is known to never be nil. These are the
// Go-world analog of spec's NotNullFrameworkMethods (string/URI/collection/task members that are
// guaranteed non-null): constructors that either panic instead of returning a zero value, or
// whose documented contract guarantees a non-nil result.
var notNullFuncs = []funcSig{
	{_func, regexp.MustCompile(`^errors$`), regexp.MustCompile(`^New$`)},
	{_func, regexp.MustCompile(`^fmt$`), regexp.MustCompile(`^Errorf$`)},
	{_func, regexp.MustCompile(`^context$`), regexp.MustCompile(`^(Background|TODO)$`)},
	{_func, regexp.MustCompile(`^regexp$`), regexp.MustCompile(`^MustCompile$`)},
	{_func, regexp.MustCompile(`^bytes$`), regexp.MustCompile(`^(NewBuffer|NewBufferString)$`)},
	{_func, regexp.MustCompile(`^strings$`), regexp.MustCompile(`^NewReader$`)},
}

// notNullProperties lists methods that stand in for spec's NotNullFrameworkProperties (the
// dictionary Keys/Values properties): Go has no property syntax, so these are ordinary methods
// recognized by name on a specific receiver type.
var notNullProperties = []funcSig{
	{_method, regexp.MustCompile(`^github\.com/nullcontract/nnanalyzer/util/orderedmap$`), regexp.MustCompile(`^(Keys|Values)$`)},
}

// nullCheckPredicate describes a known stdlib-style function whose truthy (for boolean-returning
// forms) or error-is-nil (for error-returning forms) result proves one of its arguments non-nil -
// the Go analog of `!string.IsNullOrEmpty(x)`/`!string.IsNullOrWhiteSpace(x)` asserting `x != nil`.
type nullCheckPredicate struct {
	sig      funcSig
	argIndex int
}

// nullCheckPredicates lists known asserting predicates. errors.As(err, target) is the clearest Go
// analog: a true return proves `target` now points at a non-nil value. By contrast, something
// like url.Parse deliberately is *not* listed here - like Uri.TryCreate in spec §4.5, its result
// argument is not asserted non-nil by a successful call, it is simply the normal return value.
var nullCheckPredicates = []nullCheckPredicate{
	{funcSig{_func, regexp.MustCompile(`^errors$`), regexp.MustCompile(`^As$`)}, 1},
}

// KnowledgeBase is the per-compilation resolved knowledge base. It is safe for concurrent reads
// once constructed; construction itself performs no I/O and is cheap enough to not require
// memoization across instances, unlike the teacher's CFG-backed accumulation caches.
type KnowledgeBase struct{}

// New constructs a KnowledgeBase. It takes no compilation-specific state today because the tables
// above are matched purely by package path and name, but keeps the constructor shape a host could
// extend to filter by build tags or module graph in the future.
func New() *KnowledgeBase {
	return &KnowledgeBase{}
}

// IsKnownNonNullMethod reports whether obj's result is a documented non-nil constructor.
func (kb *KnowledgeBase) IsKnownNonNullMethod(obj *types.Func) bool {
	for _, sig := range notNullFuncs {
		if sig.matches(obj) {
			return true
		}
	}
	return false
}

// IsKnownNonNullProperty reports whether obj is one of the framework "properties" (Keys/Values
// style accessor methods) known to never return nil.
func (kb *KnowledgeBase) IsKnownNonNullProperty(obj *types.Func) bool {
	for _, sig := range notNullProperties {
		if sig.matches(obj) {
			return true
		}
	}
	return false
}

// IsNullCheckPredicate reports whether a call to obj, if it returns true (or a nil error, for
// error-returning predicates), proves one of its arguments non-nil, and if so which argument
// index. This supplements - it does not replace - the annotation-based `// isnullcheck` mechanism
// (see the annotation package), which is the primary way users mark their own predicates.
func (kb *KnowledgeBase) IsNullCheckPredicate(obj *types.Func) (argIndex int, ok bool) {
	for _, p := range nullCheckPredicates {
		if p.sig.matches(obj) {
			return p.argIndex, true
		}
	}
	return 0, false
}

// FuncObj resolves the *types.Func a call expression invokes, or nil if it cannot be resolved
// (e.g., a call through a variable holding a func value, which this analyzer does not track).
func FuncObj(call *ast.CallExpr, info *types.Info) *types.Func {
	var ident *ast.Ident
	switch fun := call.Fun.(type) {
	case *ast.Ident:
		ident = fun
	case *ast.SelectorExpr:
		ident = fun.Sel
	default:
		return nil
	}
	f, _ := info.Uses[ident].(*types.Func)
	return f
}
