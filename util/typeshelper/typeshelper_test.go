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

package typeshelper

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIterType(t *testing.T) {
	yield0 := types.NewSignatureType(nil, nil, nil, nil, types.NewTuple(), false)
	iter0 := types.NewSignatureType(nil, nil, nil, types.NewTuple(types.NewVar(0, nil, "yield", yield0)), nil, false)
	assert.False(t, IsIterType(iter0), "yield func returning nothing should not count as an iterator")

	boolResult := types.NewTuple(types.NewVar(0, nil, "", types.Typ[types.Bool]))
	yield1 := types.NewSignatureType(nil, nil, nil, types.NewTuple(types.NewVar(0, nil, "k", types.Typ[types.Int])), boolResult, false)
	iter1 := types.NewSignatureType(nil, nil, nil, types.NewTuple(types.NewVar(0, nil, "yield", yield1)), nil, false)
	assert.True(t, IsIterType(iter1))

	assert.False(t, IsIterType(types.Typ[types.Int]))
}
