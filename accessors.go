// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lazyresolve

import (
	"github.com/Masterminds/semver/v3"

	"github.com/bufbuild/lazyresolve/attr"
	"github.com/bufbuild/lazyresolve/deprecation"
	"github.com/bufbuild/lazyresolve/phase"
)

// Attribute reads the value stored under key in d's side table.
//
// Only slots written by phases that d has completed may be read; callers
// should resolve d far enough first.
func Attribute[V any](d Declaration, key attr.Key[V]) (V, bool) {
	return attr.Get(d.Attributes(), key)
}

// DeprecationInfo returns the deprecations that apply to d when compiling
// against apiVersion. A nil apiVersion means the latest version.
//
// Returns nil if d's deprecations have not been computed yet, which happens
// no earlier than [phase.CompilerRequiredAnnotations]. A non-nil result
// that is empty means d is known not to be deprecated.
func DeprecationInfo(d Declaration, apiVersion *semver.Version) *deprecation.PerUseSite {
	if d.ResolveState().Phase() < phase.CompilerRequiredAnnotations {
		return nil
	}
	return deprecation.Of(d.Attributes()).DeprecationsInfo(apiVersion)
}
