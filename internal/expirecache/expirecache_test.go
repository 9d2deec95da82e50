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

package expirecache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSetGet(t *testing.T) {
	t.Parallel()

	c := New[string, int](time.Hour)
	defer c.Close()

	require.True(t, c.Set("a", 1, time.Minute))
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	c := New[string, int](time.Hour)
	defer c.Close()

	require.True(t, c.Set("a", 1, time.Minute))
	require.True(t, c.Remove("a"))
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestTouchSlidesDeadline(t *testing.T) {
	t.Parallel()

	c := New[string, int](time.Hour)
	defer c.Close()

	require.True(t, c.Set("a", 1, 50*time.Millisecond))
	require.True(t, c.Touch("a"))

	s, ok := c.sliders["a"]
	require.True(t, ok)
	assert.True(t, s.deadline.After(time.Now()))

	assert.False(t, c.Touch("missing"))
}

func TestPurgeRemovesExpiredEntries(t *testing.T) {
	t.Parallel()

	c := New[string, int](10 * time.Millisecond)
	defer c.Close()

	require.True(t, c.Set("a", 1, time.Millisecond))

	require.Eventually(t, func() bool {
		_, ok := c.Get("a")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestIDIsStableAndUnique(t *testing.T) {
	t.Parallel()

	c1 := New[string, int](time.Hour)
	defer c1.Close()
	c2 := New[string, int](time.Hour)
	defer c2.Close()

	assert.Equal(t, c1.ID(), c1.ID())
	assert.NotEqual(t, c1.ID(), c2.ID())
}

func TestCloseStopsWithoutLeaking(t *testing.T) {
	t.Parallel()

	c := New[string, int](time.Millisecond)
	c.Set("a", 1, time.Millisecond)
	c.Close()
	c.Close() // idempotent
}
