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

// Package deprecation computes how a declaration is deprecated for a given
// API version.
//
// A declaration carries zero or more raw [AnnotationInfo] facts, one per
// deprecation-like annotation, in declaration order. For a given API
// version these collapse into at most one effective [Info] per [UseSite]:
// the first fact whose version gate is satisfied wins. A [Provider] performs
// that computation and memoizes it per API version.
//
// A declaration's provider is stored in its side table under [ProviderKey]
// by the phase that resolves compiler-required annotations. Until then, [Of]
// returns [Unresolved], whose results are nil; this is distinct from
// [Empty], which reports a known, non-deprecated declaration.
package deprecation

//go:generate go run github.com/bufbuild/lazyresolve/internal/enum kinds.yaml

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Info is the effective deprecation of (part of) a declaration.
type Info struct {
	Level Level
	// Whether overrides of the declaration are deprecated too.
	PropagatesToOverrides bool
	Message               string
}

// String implements [fmt.Stringer].
func (i Info) String() string {
	var buf strings.Builder
	buf.WriteString(i.Level.String())
	if i.PropagatesToOverrides {
		buf.WriteString(" (propagating)")
	}
	if i.Message != "" {
		fmt.Fprintf(&buf, ": %s", i.Message)
	}
	return buf.String()
}

// AnnotationInfo is a raw deprecation fact, as declared by one annotation.
type AnnotationInfo struct {
	Kind Kind
	Site UseSite

	// For [Deprecated], the fixed level.
	Level                 Level
	Message               string
	PropagatesToOverrides bool

	// For [DeprecatedSince], the API versions from which each level applies.
	// Any of these may be nil.
	WarningSince, ErrorSince, HiddenSince *semver.Version

	// For [SinceVersion], the first API version in which the declaration is
	// available.
	Since *semver.Version
}

// Applies returns the deprecation this fact contributes at apiVersion, if
// its gate is satisfied.
//
// A nil apiVersion means the latest version: every deprecation gate is
// satisfied and every future API is available.
func (a AnnotationInfo) Applies(apiVersion *semver.Version) (Info, bool) {
	info := Info{
		Level:                 a.Level,
		PropagatesToOverrides: a.PropagatesToOverrides,
		Message:               a.Message,
	}

	switch a.Kind {
	case Deprecated:
		return info, true

	case DeprecatedSince:
		switch {
		case reached(apiVersion, a.HiddenSince):
			info.Level = Hidden
		case reached(apiVersion, a.ErrorSince):
			info.Level = Error
		case reached(apiVersion, a.WarningSince):
			info.Level = Warning
		default:
			return Info{}, false
		}
		return info, true

	case SinceVersion:
		if a.Since == nil || apiVersion == nil || !apiVersion.LessThan(a.Since) {
			return Info{}, false
		}
		info.Level = Hidden
		info.PropagatesToOverrides = true
		if info.Message == "" {
			info.Message = fmt.Sprintf("available since API version %s", a.Since.Original())
		}
		return info, true

	default:
		return Info{}, false
	}
}

// reached returns whether apiVersion is at or past since.
func reached(apiVersion, since *semver.Version) bool {
	if since == nil {
		return false
	}
	return apiVersion == nil || !apiVersion.LessThan(since)
}

// PerUseSite is the effective deprecation of a declaration for one API
// version, broken down by use site.
//
// Values of this type are shared between callers and must not be modified.
type PerUseSite struct {
	// Deprecation of the declaration as a whole, if any.
	All *Info
	// Deprecations that only apply to a particular use site.
	BySite map[UseSite]*Info
}

// empty is the result for a declaration known not to be deprecated.
var empty = &PerUseSite{}

// ForSite returns the deprecation that applies to site, falling back to the
// whole-declaration deprecation.
//
// Returns nil if p is nil or site is not deprecated.
func (p *PerUseSite) ForSite(site UseSite) *Info {
	if p == nil {
		return nil
	}
	if info, ok := p.BySite[site]; ok {
		return info
	}
	return p.All
}

// IsEmpty returns whether nothing is deprecated.
func (p *PerUseSite) IsEmpty() bool {
	return p != nil && p.All == nil && len(p.BySite) == 0
}

// compute collapses annotations into their effective deprecation at
// apiVersion.
func compute(annotations []AnnotationInfo, apiVersion *semver.Version) *PerUseSite {
	var out PerUseSite
	for _, a := range annotations {
		if a.Site == AllSites {
			if out.All != nil {
				continue
			}
		} else if _, ok := out.BySite[a.Site]; ok {
			continue
		}

		info, ok := a.Applies(apiVersion)
		if !ok {
			continue
		}

		if a.Site == AllSites {
			out.All = &info
			continue
		}
		if out.BySite == nil {
			out.BySite = make(map[UseSite]*Info)
		}
		out.BySite[a.Site] = &info
	}

	if out.All == nil && out.BySite == nil {
		return empty
	}
	return &out
}
