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

// Package coalesce ships the one ambient helper this analyzer's Go retargeting of `a ?? b`
// depends on: Go has no coalescing operator, and matching the informal `v := a; if v == nil {
// v = b }` idiom structurally is unreliable (too many equivalent spellings), so instead callers
// write Coalesce(a, b) and the classifier recognizes calls to this specific function by name and
// package path, exactly as it recognizes Constraint.NotNull by name.
package coalesce

import "reflect"

// Coalesce returns a if it is non-nil, otherwise b. Non-nilable types (anything that is not a
// pointer, interface, map, slice, chan, or func) are always considered non-nil and Coalesce
// always returns a for them.
func Coalesce[T any](a, b T) T {
	v := reflect.ValueOf(a)
	if !v.IsValid() {
		// a's static type is itself an interface (e.g. error) and it holds nil, so boxing it into
		// the `any` reflect.ValueOf takes loses all type information.
		return b
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		if v.IsNil() {
			return b
		}
	}
	return a
}
