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

// Package annotation reads this analyzer's doc-comment directive grammar - `// nonnil(...)`,
// `// checknull(...)`, `// isnullcheck` - and resolves, for any declared symbol, which of those
// markers apply to it. Go has no attribute/annotation syntax that can be attached to an arbitrary
// parameter or struct field, so the directives are carried in doc comments and matched by a
// regex grammar, the same way `// nonnil(exprNonceMap)` and friends are parsed elsewhere in this
// codebase's ancestry.
package annotation

import (
	"bytes"
	"encoding/gob"
	"errors"
	"go/ast"
	"go/types"
	"regexp"
	"strings"

	"github.com/klauspost/compress/s2"
)

// Set is a bitmask of the three markers a symbol may carry.
type Set uint8

// The three markers defined by the directive grammar.
const (
	NotNull Set = 1 << iota
	CheckNull
	IsNullCheck
)

// Has reports whether s carries every bit set in want.
func (s Set) Has(want Set) bool { return s&want == want }

// Any reports whether s carries at least one bit of want.
func (s Set) Any(want Set) bool { return s&want != 0 }

// NotNullLike reports whether s is NotNull or CheckNull, the two markers spec treats with union
// semantics everywhere a "this is annotated" check is performed.
func (s Set) NotNullLike() bool { return s.Any(NotNull | CheckNull) }

var (
	_nonnilRe     = regexp.MustCompile(`(?m)^\s*nonnil(?:\(([^)]*)\))?\s*$`)
	_checknullRe  = regexp.MustCompile(`(?m)^\s*checknull(?:\(([^)]*)\))?\s*$`)
	_isnullRe     = regexp.MustCompile(`(?m)^\s*isnullcheck\s*$`)
)

// parsed is the result of scanning one doc comment for directives.
type parsed struct {
	// whole is the Set that applies to the symbol as a whole (a bare `// nonnil` with no
	// parenthesized name list - used for fields, and as a setter's implicit-parameter shorthand).
	whole Set
	// named maps an explicitly listed identifier (a parameter name, or the literal "result") to
	// the Set attached to it.
	named map[string]Set
}

func parseDoc(doc *ast.CommentGroup) parsed {
	out := parsed{named: map[string]Set{}}
	if doc == nil {
		return out
	}
	text := doc.Text()

	addMatches := func(re *regexp.Regexp, bit Set) {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			names := strings.TrimSpace(m[1])
			if names == "" {
				out.whole |= bit
				continue
			}
			for _, n := range strings.Split(names, ",") {
				n = strings.TrimSpace(n)
				if n == "" {
					continue
				}
				out.named[n] |= bit
			}
		}
	}
	addMatches(_nonnilRe, NotNull)
	addMatches(_checknullRe, CheckNull)
	if _isnullRe.MatchString(text) {
		out.whole |= IsNullCheck
	}
	return out
}

// funcAnnotation is what Reader keeps per declared function/method.
type funcAnnotation struct {
	result      Set
	params      map[string]Set
	isNullCheck bool
}

// Reader resolves annotations for the symbols declared in the packages of a single pass. It is
// built once per package and, like the knowledge base, is safe for concurrent reads afterward.
type Reader struct {
	funcs  map[*types.Func]funcAnnotation
	fields map[*types.Var]Set
	// params mirrors funcs[_].params but keyed by the parameter's *types.Var identity directly,
	// so a bare reference to the parameter inside the function body (e.g. the target of a
	// Constraint.NotNull call, or the address-of expression in a ref-parameter escape check) can
	// be resolved back to its annotation without the caller having to thread the enclosing
	// function symbol through.
	params map[*types.Var]Set

	// getters/setters implement the property<->accessor linkage: for a receiver named type,
	// getters holds the *types.Func for a zero-arg, one-result method, and setters holds
	// the *types.Func for a one-arg SetX method, keyed by the property's base name ("X").
	getters map[propKey]*types.Func
	setters map[propKey]*types.Func

	upstream map[string]Set // qualified-name -> Set, merged in from imported packages' facts
}

type propKey struct {
	recv string // the receiver named type's qualified name
	name string // property base name, e.g. "X" for getter "X" / setter "SetX"
}

// NewReader builds a Reader by walking every file in files, using info to resolve declarations
// to their *types.Func / *types.Var objects.
func NewReader(files []*ast.File, info *types.Info) *Reader {
	r := &Reader{
		funcs:   map[*types.Func]funcAnnotation{},
		fields:  map[*types.Var]Set{},
		params:  map[*types.Var]Set{},
		getters: map[propKey]*types.Func{},
		setters: map[propKey]*types.Func{},
	}

	for _, f := range files {
		for _, decl := range f.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				r.readFuncDecl(d, info)
			case *ast.GenDecl:
				r.readGenDecl(d, info)
			}
		}
	}
	r.linkAccessors()
	return r
}

func (r *Reader) readFuncDecl(d *ast.FuncDecl, info *types.Info) {
	obj, ok := info.Defs[d.Name].(*types.Func)
	if !ok {
		return
	}
	p := parseDoc(d.Doc)
	result := p.whole &^ IsNullCheck
	if resultSet, ok := p.named["result"]; ok {
		result |= resultSet
		delete(p.named, "result")
	}
	fa := funcAnnotation{result: result, params: p.named, isNullCheck: p.whole.Has(IsNullCheck)}
	r.funcs[obj] = fa

	if d.Type.Params != nil {
		for _, field := range d.Type.Params.List {
			for _, name := range field.Names {
				pv, ok := info.Defs[name].(*types.Var)
				if !ok {
					continue
				}
				if set, ok := p.named[name.Name]; ok {
					r.params[pv] = set
				}
			}
		}
	}

	if recv := obj.Type().(*types.Signature).Recv(); recv != nil && d.Recv != nil {
		recvName := recvTypeName(recv)
		if strings.HasPrefix(d.Name.Name, "Set") && len(d.Name.Name) > 3 {
			sig := obj.Type().(*types.Signature)
			if sig.Params().Len() == 1 {
				r.setters[propKey{recvName, d.Name.Name[3:]}] = obj
			}
		} else {
			sig := obj.Type().(*types.Signature)
			if sig.Params().Len() == 0 && sig.Results().Len() >= 1 {
				r.getters[propKey{recvName, d.Name.Name}] = obj
			}
		}
	}
}

func (r *Reader) readGenDecl(d *ast.GenDecl, info *types.Info) {
	if d.Tok.String() != "type" {
		return
	}
	for _, spec := range d.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}
		st, ok := ts.Type.(*ast.StructType)
		if !ok || st.Fields == nil {
			continue
		}
		for _, field := range st.Fields.List {
			p := parseDoc(field.Doc)
			if p.whole == 0 {
				continue
			}
			for _, name := range field.Names {
				if obj, ok := info.Defs[name].(*types.Var); ok {
					r.fields[obj] = p.whole
				}
			}
		}
	}
}

func recvTypeName(recv *types.Var) string {
	t := recv.Type()
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	if named, ok := t.(*types.Named); ok {
		obj := named.Obj()
		if obj.Pkg() != nil {
			return obj.Pkg().Path() + "." + obj.Name()
		}
		return obj.Name()
	}
	return ""
}

// linkAccessors implements spec's property<->accessor rule: a getter's Set is visible when
// querying the paired setter's implicit value parameter, and vice versa, via union semantics.
func (r *Reader) linkAccessors() {
	for key, getter := range r.getters {
		setter, ok := r.setters[key]
		if !ok {
			continue
		}
		ga, sa := r.funcs[getter], r.funcs[setter]
		union := ga.result | sa.result
		ga.result = union
		r.funcs[getter] = ga
		// The setter's implicit value parameter is its sole parameter; record the union under
		// its declared name so FuncParam finds it without a special case.
		sig := setter.Type().(*types.Signature)
		if sig.Params().Len() == 1 {
			pname := sig.Params().At(0).Name()
			if sa.params == nil {
				sa.params = map[string]Set{}
			}
			sa.params[pname] |= union
			r.funcs[setter] = sa
		}
	}
}

// FuncResult returns the Set annotated on fn's return value.
func (r *Reader) FuncResult(fn *types.Func) Set {
	if fn == nil {
		return r.upstreamLookup(fn)
	}
	return r.funcs[fn].result
}

// FuncParam returns the Set annotated on fn's parameter named paramName.
func (r *Reader) FuncParam(fn *types.Func, paramName string) Set {
	if fn == nil {
		return 0
	}
	return r.funcs[fn].params[paramName]
}

// ParamVar returns the Set annotated on a parameter, looked up directly by its *types.Var
// identity rather than by (function, name) - see the params field's doc comment.
func (r *Reader) ParamVar(v *types.Var) Set {
	if v == nil {
		return 0
	}
	return r.params[v]
}

// IsNullCheck reports whether fn is marked `// isnullcheck`.
func (r *Reader) IsNullCheck(fn *types.Func) bool {
	if fn == nil {
		return false
	}
	return r.funcs[fn].isNullCheck
}

// Field returns the Set annotated on a struct field.
func (r *Reader) Field(v *types.Var) Set {
	if v == nil {
		return 0
	}
	return r.fields[v]
}

// upstreamLookup is a defensive no-op placeholder for symbols this Reader never saw declared
// (e.g., fn is nil because resolution failed); real upstream resolution goes through
// MergeUpstream plus a qualified-name lookup performed by the caller.
func (r *Reader) upstreamLookup(*types.Func) Set { return 0 }

// QualifiedName returns the dotted-path key this package uses both for cross-package fact export
// and upstream lookups: "<import path>.<name>" for a top-level symbol, or
// "<import path>.<recv type>.<name>" for a method.
func QualifiedName(obj types.Object) string {
	if obj == nil || obj.Pkg() == nil {
		return obj.Name()
	}
	if fn, ok := obj.(*types.Func); ok {
		if recv := fn.Type().(*types.Signature).Recv(); recv != nil {
			return recvTypeName(recv) + "." + obj.Name()
		}
	}
	return obj.Pkg().Path() + "." + obj.Name()
}

// MergeUpstream records annotation bits imported from an upstream package's exported fact, so
// that a symbol declared in another package but queried from this one (e.g., a function whose
// NotNull-annotated parameter is being checked at a call site in a downstream package) still
// resolves correctly without re-parsing the upstream source.
func (r *Reader) MergeUpstream(facts map[string]Set) {
	if r.upstream == nil {
		r.upstream = map[string]Set{}
	}
	for k, v := range facts {
		r.upstream[k] |= v
	}
}

// UpstreamFuncResult looks up the result annotation for a function declared upstream, by its
// QualifiedName.
func (r *Reader) UpstreamFuncResult(qualifiedName string) Set {
	return r.upstream[qualifiedName]
}

// ExportedAnnotations is the per-package analysis.Fact exported so that downstream packages can
// resolve `// nonnil(...)` markers on upstream symbols without re-parsing upstream source. It is
// a pure cache of what a symbol is annotated - never of flow facts - so exporting it does not
// introduce interprocedural flow analysis.
type ExportedAnnotations struct {
	// Funcs maps a qualified function/method name to its result annotation.
	Funcs map[string]Set
}

// AFact makes ExportedAnnotations satisfy analysis.Fact.
func (*ExportedAnnotations) AFact() {}

// Export builds the ExportedAnnotations fact for every function declared in this Reader that
// carries a non-zero result annotation.
func (r *Reader) Export(objToName func(*types.Func) string) *ExportedAnnotations {
	out := &ExportedAnnotations{Funcs: map[string]Set{}}
	for fn, fa := range r.funcs {
		if fa.result == 0 {
			continue
		}
		out.Funcs[objToName(fn)] = fa.result
	}
	if len(out.Funcs) == 0 {
		return nil
	}
	return out
}

// GobEncode encodes ExportedAnnotations with s2 compression, the same scheme used elsewhere in
// this codebase for cross-package analysis.Fact payloads.
func (e *ExportedAnnotations) GobEncode() (b []byte, err error) {
	var buf bytes.Buffer
	writer := s2.NewWriter(&buf)
	defer func() {
		if cerr := writer.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	if err := gob.NewEncoder(writer).Encode(e.Funcs); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode decodes an ExportedAnnotations payload produced by GobEncode.
func (e *ExportedAnnotations) GobDecode(input []byte) error {
	e.Funcs = map[string]Set{}
	return gob.NewDecoder(s2.NewReader(bytes.NewBuffer(input))).Decode(&e.Funcs)
}
