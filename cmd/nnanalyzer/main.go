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

// Package main makes it possible to build nnanalyzer as a standalone code checker that can be
// independently invoked via `go vet -vettool` or directly on a list of packages.
package main

import (
	"flag"

	"github.com/nullcontract/nnanalyzer"
	"github.com/nullcontract/nnanalyzer/config"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	// For better UX, lift the flags from config.Analyzer to the top level so that users can
	// specify them without having to prefix them with the sub-analyzer name, e.g.
	// `nnanalyzer -pretty-print ./...` instead of
	// `nnanalyzer -nnanalyzer_config.pretty-print ./...`.
	config.Analyzer.Flags.VisitAll(func(f *flag.Flag) { flag.Var(f.Value, f.Name, f.Usage) })

	singlechecker.Main(nnanalyzer.Analyzer)
}
