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

// Package report implements the file-loading and table-printing logic behind the
// nnanalyzer-report CLI, kept separate from main.go so it can be unit tested without invoking
// cobra's command-execution machinery.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Finding is the JSON-serializable shape of one nnanalyzer diagnostic, independent of
// go/token.Pos (which is only meaningful within the analysis.Pass.Fset that produced it).
type Finding struct {
	Kind    string `json:"kind"`
	File    string `json:"file"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// LoadFindings reads and parses a JSON array of Finding from path.
func LoadFindings(path string) ([]Finding, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var findings []Finding
	if err := json.Unmarshal(b, &findings); err != nil {
		return nil, fmt.Errorf("parse %q as a JSON array of findings: %w", path, err)
	}
	return findings, nil
}

// PrintSummary writes a per-kind count table (most frequent kind first) to w.
func PrintSummary(w io.Writer, findings []Finding) {
	counts := map[string]int{}
	for _, f := range findings {
		counts[f.Kind]++
	}

	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if counts[kinds[i]] != counts[kinds[j]] {
			return counts[kinds[i]] > counts[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})

	fmt.Fprintf(w, "%-30s %s\n", "KIND", "COUNT")
	for _, k := range kinds {
		fmt.Fprintf(w, "%-30s %d\n", k, counts[k])
	}
	fmt.Fprintf(w, "%-30s %d\n", "TOTAL", len(findings))
}
