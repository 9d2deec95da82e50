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

// This file hosts non-user-configurable parameters --- these are for development and testing purposes only.

// NoCheckString is the string that may be inserted into the docstring for a package to prevent
// nnanalyzer from analyzing that package at all - this is useful for unit tests and for
// incrementally onboarding a large codebase.
const NoCheckString = "<nnanalyzer no check>"

const modulePkgPathPrefix = "github.com/nullcontract"

// PkgPathPrefix is the package prefix for nnanalyzer itself, used to recognize nnanalyzer's own
// ambient helper packages (e.g., the Constraint-call recognizer) regardless of import alias.
const PkgPathPrefix = modulePkgPathPrefix + "/nnanalyzer"

// DirLevelsToPrintForTriggers controls the number of enclosing directories to print when referring
// to the locations that triggered diagnostics - one level is normally sufficient disambiguation,
// but feel free to increase.
const DirLevelsToPrintForTriggers = 1

// ConstraintTypeName is the bare (un-qualified) identifier name that, when used as the receiver
// of a call to a method named "NotNull", is recognized as a constraint assertion
// (`Constraint.NotNull(x)`, see spec §4.5 Constraints). Matching is by name only, exactly as
// the NotNull/CheckNull/IsNullCheck annotations are matched by name only - this keeps the
// analyzer agnostic to which package actually defines the `Constraint` helper.
const ConstraintTypeName = "Constraint"

// ConstraintMethodName is the method name recognized on ConstraintTypeName.
const ConstraintMethodName = "NotNull"

// Flag names for config.Analyzer.Flags, exported so other packages (and tests) can look up or
// set them by name without hardcoding string literals in multiple places.
const (
	PrettyPrintFlag       = "pretty-print"
	PrintFullFilePathFlag = "print-full-file-path"
	ConfigFileFlag        = "config-file"
	ExcludePkgsFlag       = "exclude-pkgs"
)
