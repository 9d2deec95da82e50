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

package annotation

import (
	"go/types"
	"reflect"

	"golang.org/x/tools/go/analysis"
)

// Analyzer builds a *Reader for the current package, merging in any ExportedAnnotations facts
// exported by its upstream dependencies, and in turn exports its own fact for its downstream
// importers. It does no diagnostic reporting of its own.
var Analyzer = &analysis.Analyzer{
	Name:       "nnanalyzer_annotation",
	Doc:        "Parse nonnil/checknull/isnullcheck doc-comment directives into a queryable Reader.",
	Run:        run,
	FactTypes:  []analysis.Fact{new(ExportedAnnotations)},
	ResultType: reflect.TypeOf((*Reader)(nil)),
}

func run(pass *analysis.Pass) (any, error) {
	r := NewReader(pass.Files, pass.TypesInfo)

	for _, f := range pass.AllPackageFacts() {
		if exported, ok := f.Fact.(*ExportedAnnotations); ok {
			r.MergeUpstream(exported.Funcs)
		}
	}

	if fact := r.Export(func(fn *types.Func) string { return QualifiedName(fn) }); fact != nil {
		pass.ExportPackageFact(fact)
	}

	return r, nil
}
