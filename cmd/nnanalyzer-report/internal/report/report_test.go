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

package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFindings(t *testing.T) {
	t.Parallel()

	findings := []Finding{
		{Kind: "NullAssignment", File: "a.go", Line: 3, Message: "oops"},
		{Kind: "UnneededNullCheck", File: "b.go", Line: 9, Message: "redundant"},
	}
	b, err := json.Marshal(findings)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "findings.json")
	require.NoError(t, os.WriteFile(path, b, 0o600))

	got, err := LoadFindings(path)
	require.NoError(t, err)
	assert.Equal(t, findings, got)
}

func TestLoadFindingsInvalidJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := LoadFindings(path)
	assert.Error(t, err)
}

func TestPrintSummaryOrdersByCountThenName(t *testing.T) {
	t.Parallel()

	findings := []Finding{
		{Kind: "NullAssignment"},
		{Kind: "NullAssignment"},
		{Kind: "UnneededConstraint"},
		{Kind: "AssignmentAfterCondition"},
	}

	var buf bytes.Buffer
	PrintSummary(&buf, findings)

	out := buf.String()
	assert.Contains(t, out, "NullAssignment")
	assert.Contains(t, out, "TOTAL")
	// NullAssignment (count 2) must print before either count-1 kind.
	nullAssignmentIdx := bytes.Index(buf.Bytes(), []byte("NullAssignment"))
	assignmentAfterIdx := bytes.Index(buf.Bytes(), []byte("AssignmentAfterCondition"))
	assert.Less(t, nullAssignmentIdx, assignmentAfterIdx)
	// The two count-1 kinds tie on count and print in name order.
	unneededConstraintIdx := bytes.Index(buf.Bytes(), []byte("UnneededConstraint"))
	assert.Less(t, assignmentAfterIdx, unneededConstraintIdx)
}
