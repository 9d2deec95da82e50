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

package future

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFuture_Wait(t *testing.T) {
	t.Parallel()

	f := New(func() (int, error) { return 42, nil })
	require.Equal(t, 42, f.Wait())
	// Calling Wait again must not block or change the result.
	require.Equal(t, 42, f.Wait())
}

func TestFuture_Result(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	f := New(func() (string, error) { return "", wantErr })
	v, err := f.Result()
	require.Empty(t, v)
	require.Equal(t, wantErr, err)
}

func TestFuture_ConfigureAwait(t *testing.T) {
	t.Parallel()

	f := New(func() (int, error) { return 7, nil })
	require.Equal(t, 7, f.ConfigureAwait(false).Wait())
}
