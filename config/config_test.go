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

package config

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_IsPkgInScope(t *testing.T) {
	c := &Config{ExcludePkgFilters: []string{`^vendor/`, `/internal/generated$`}}
	for _, p := range c.ExcludePkgFilters {
		re, err := regexp.Compile(p)
		require.NoError(t, err)
		c.excludeRegexps = append(c.excludeRegexps, re)
	}

	assert.True(t, c.IsPkgInScope("github.com/acme/widget"))
	assert.False(t, c.IsPkgInScope("vendor/github.com/acme/widget"))
	assert.False(t, c.IsPkgInScope("github.com/acme/widget/internal/generated"))
}

func TestConfig_NoFilters(t *testing.T) {
	c := &Config{}
	assert.True(t, c.IsPkgInScope("anything/at/all"))
}
