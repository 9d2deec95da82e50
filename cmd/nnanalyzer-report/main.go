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

// Command nnanalyzer-report renders a JSON diagnostic dump produced by another nnanalyzer-backed
// driver (e.g. a golangci-lint run with `--out-format json`, post-processed down to the
// report.Finding shape) into a human-readable per-kind summary table. It does no analysis of its
// own - this command is the only place in this module that needs a CLI framework richer than the
// analysis drivers' flag.FlagSet, so it is the one command built on cobra rather than singlechecker.
package main

import (
	"fmt"
	"os"

	"github.com/nullcontract/nnanalyzer/cmd/nnanalyzer-report/internal/report"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nnanalyzer-report",
	Short: "Summarize nnanalyzer diagnostic dumps",
	Long: `nnanalyzer-report reads a JSON array of nnanalyzer findings and prints a summary table,
grouped by diagnostic kind, to help triage a large run before fixing individual sites.`,
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file.json>",
	Short: "Print a per-kind diagnostic count table for a findings file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		findings, err := report.LoadFindings(args[0])
		if err != nil {
			return fmt.Errorf("load findings: %w", err)
		}
		report.PrintSummary(os.Stdout, findings)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
