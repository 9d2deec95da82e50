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

// Package config implements the configuration analyzer for nnanalyzer - a small `*analysis.Analyzer`
// whose sole purpose is to expose a flag.FlagSet that every other analyzer in the pipeline can
// depend on and read a resolved *Config from.
package config

import (
	"flag"
	"fmt"
	"go/ast"
	"os"
	"reflect"
	"regexp"
	"strings"

	"golang.org/x/tools/go/analysis"
	"gopkg.in/yaml.v3"
)

const _doc = "Build the configuration for nnanalyzer from command-line flags and an optional YAML " +
	"file, to be consumed by the rest of the analysis pipeline."

// Analyzer is a configuration-only analyzer - it does no analysis of its own, simply parsing
// flags (and, if present, a YAML config file) into a *Config for downstream analyzers to consume.
var Analyzer = &analysis.Analyzer{
	Name:       "nnanalyzer_config",
	Doc:        _doc,
	Run:        run,
	ResultType: reflect.TypeOf((*Config)(nil)),
	Flags:      newFlagSet(),
}

// Config is the fully resolved configuration for a single nnanalyzer invocation.
type Config struct {
	// PrettyPrint writes each diagnostic as "[Kind] message" instead of "Kind: message". No color
	// highlighting is applied.
	PrettyPrint bool
	// PrintFullFilePath prints the full (non-truncated) file path in diagnostic locations.
	PrintFullFilePath bool
	// ConfigFile, if non-empty, is a YAML file whose keys mirror the flags above and are merged
	// on top of them (flags set the defaults, the file overrides them).
	ConfigFile string
	// ExcludePkgFilters is a list of regular expressions matched against the package path; any
	// package matching one of these is skipped entirely.
	ExcludePkgFilters []string

	excludeRegexps []*regexp.Regexp
}

var _flagConfig Config
var _excludePkgFiltersFlag string

func newFlagSet() flag.FlagSet {
	fs := flag.NewFlagSet("nnanalyzer_config", flag.ExitOnError)
	fs.BoolVar(&_flagConfig.PrettyPrint, PrettyPrintFlag, false, "Pretty print diagnostic messages (diagnostic kind in brackets, no color).")
	fs.BoolVar(&_flagConfig.PrintFullFilePath, PrintFullFilePathFlag, false, "Print the full file path in diagnostic locations instead of a truncated one.")
	fs.StringVar(&_flagConfig.ConfigFile, ConfigFileFlag, "", "Path to a YAML file with nnanalyzer settings, merged on top of the flags above.")
	fs.StringVar(&_excludePkgFiltersFlag, ExcludePkgsFlag, "", "Comma-separated list of regular expressions; packages whose import path matches one of them are skipped.")
	return *fs
}

// yamlConfig mirrors Config's user-facing fields for parsing a `.nnanalyzer.yaml` file.
type yamlConfig struct {
	PrettyPrint        *bool    `yaml:"pretty-print"`
	PrintFullFilePath  *bool    `yaml:"print-full-file-path"`
	ExcludePkgFilters  []string `yaml:"exclude-pkgs"`
}

func run(pass *analysis.Pass) (interface{}, error) {
	conf := _flagConfig

	if conf.ConfigFile != "" {
		b, err := os.ReadFile(conf.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("read config file %q: %w", conf.ConfigFile, err)
		}
		var y yamlConfig
		if err := yaml.Unmarshal(b, &y); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", conf.ConfigFile, err)
		}
		if y.PrettyPrint != nil {
			conf.PrettyPrint = *y.PrettyPrint
		}
		if y.PrintFullFilePath != nil {
			conf.PrintFullFilePath = *y.PrintFullFilePath
		}
		if len(y.ExcludePkgFilters) > 0 {
			conf.ExcludePkgFilters = y.ExcludePkgFilters
		}
	}

	if _excludePkgFiltersFlag != "" {
		conf.ExcludePkgFilters = append(conf.ExcludePkgFilters, strings.Split(_excludePkgFiltersFlag, ",")...)
	}

	for _, pattern := range conf.ExcludePkgFilters {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile exclude-pkgs pattern %q: %w", pattern, err)
		}
		conf.excludeRegexps = append(conf.excludeRegexps, re)
	}

	_ = pass
	return &conf, nil
}

// IsPkgInScope returns whether the given package should be analyzed at all, honoring
// ExcludePkgFilters.
func (c *Config) IsPkgInScope(pkgPath string) bool {
	for _, re := range c.excludeRegexps {
		if re.MatchString(pkgPath) {
			return false
		}
	}
	return true
}

// IsFileInScope returns whether the given file should be analyzed, which today is equivalent to
// its enclosing package being in scope (file-level exclusion is not supported).
func (c *Config) IsFileInScope(_ *ast.File) bool {
	return true
}
