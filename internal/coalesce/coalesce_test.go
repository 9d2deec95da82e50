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

package coalesce

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoalesce_Pointer(t *testing.T) {
	t.Parallel()

	x := 5
	require.Equal(t, &x, Coalesce[*int](&x, nil))
	require.Nil(t, Coalesce[*int](nil, nil))
	y := 6
	require.Equal(t, &y, Coalesce[*int](nil, &y))
}

func TestCoalesce_Interface(t *testing.T) {
	t.Parallel()

	errA := errors.New("a")
	require.Equal(t, errA, Coalesce[error](errA, nil))
	require.Nil(t, Coalesce[error](nil, nil))
}

func TestCoalesce_Slice(t *testing.T) {
	t.Parallel()

	s := []int{1, 2}
	require.Equal(t, s, Coalesce[[]int](s, nil))
	require.Nil(t, Coalesce[[]int](nil, nil))
}

func TestCoalesce_NonNilableValueType(t *testing.T) {
	t.Parallel()

	require.Equal(t, 5, Coalesce(5, 10))
	require.Equal(t, "", Coalesce("", "fallback"), "a non-nilable value type is always kept, even its zero value")
}
