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

// Package nnanalyzer implements the top-level analyzer that simply retrieves the diagnostics
// from the diagnostic-emitting sub-analyzer and reports them to the host.
package nnanalyzer

import (
	"fmt"

	"github.com/nullcontract/nnanalyzer/config"
	"github.com/nullcontract/nnanalyzer/diagnostic"
	"github.com/nullcontract/nnanalyzer/util/analysishelper"
	"golang.org/x/tools/go/analysis"
)

const _doc = "Report possible flows of null values into NotNull/CheckNull-contracted sinks: " +
	"parameters, fields, properties, and returns, per the fixed catalog of diagnostics this " +
	"analyzer emits."

// Analyzer is the top-level instance that coordinates the entire pipeline (config -> annotation
// -> flow/classify -> diagnostic) and reports the diagnostics it collects. It is the one analyzer
// a host (golangci-lint plugin, singlechecker CLI, or `go vet`-style driver) ever needs to load.
var Analyzer = &analysis.Analyzer{
	Name:     "nnanalyzer",
	Doc:      _doc,
	Run:      run,
	Requires: []*analysis.Analyzer{config.Analyzer, diagnostic.Analyzer},
}

func run(pass *analysis.Pass) (any, error) {
	result := pass.ResultOf[diagnostic.Analyzer].(*analysishelper.Result[[]diagnostic.Diagnostic])
	if result.Err != nil {
		return nil, fmt.Errorf("diagnostic analysis: %w", result.Err)
	}

	conf := pass.ResultOf[config.Analyzer].(*config.Config)
	for _, d := range result.Res {
		msg := d.Message
		if conf.PrettyPrint {
			msg = fmt.Sprintf("[%s] %s", d.Kind, msg)
		} else {
			msg = fmt.Sprintf("%s: %s", d.Kind, msg)
		}
		pass.Report(analysis.Diagnostic{Pos: d.Pos, Message: msg})
	}

	return nil, nil
}
