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

package deprecation

import (
	"sync"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/singleflight"

	"github.com/bufbuild/lazyresolve/attr"
)

// ProviderKey is the side table slot holding a declaration's [Provider].
var ProviderKey = attr.NewKey[Provider]("deprecation.provider")

// Provider answers deprecation queries for a single declaration.
type Provider interface {
	// DeprecationsInfo returns the deprecation of the declaration at
	// apiVersion.
	//
	// Returns nil if deprecations have not been resolved yet. A declaration
	// that is known not to be deprecated instead gets a non-nil result for
	// which [PerUseSite.IsEmpty] is true.
	DeprecationsInfo(apiVersion *semver.Version) *PerUseSite
}

var (
	// Unresolved is the provider of declarations whose annotations have not
	// been resolved yet.
	Unresolved Provider = unresolved{}

	// Empty is the provider of declarations known not to be deprecated.
	Empty Provider = emptyProvider{}
)

type unresolved struct{}

func (unresolved) DeprecationsInfo(*semver.Version) *PerUseSite { return nil }

type emptyProvider struct{}

func (emptyProvider) DeprecationsInfo(*semver.Version) *PerUseSite { return empty }

// NewProvider returns a provider computing deprecations from annotations.
//
// Results are memoized per API version: repeated queries for the same
// version return the same *PerUseSite.
func NewProvider(annotations []AnnotationInfo) Provider {
	if len(annotations) == 0 {
		return Empty
	}
	return &cached{annotations: annotations}
}

// cached is a Provider which memoizes its results per API version.
type cached struct {
	annotations []AnnotationInfo

	results sync.Map // [string, *PerUseSite]
	group   singleflight.Group
}

func (c *cached) DeprecationsInfo(apiVersion *semver.Version) *PerUseSite {
	key := "latest"
	if apiVersion != nil {
		key = apiVersion.String()
	}

	// Common case: this version has been asked about before.
	if r, ok := c.results.Load(key); ok {
		return r.(*PerUseSite) //nolint:errcheck // All values in this map are *PerUseSite.
	}

	r, _, _ := c.group.Do(key, func() (any, error) {
		r, _ := c.results.LoadOrStore(key, compute(c.annotations, apiVersion))
		return r, nil
	})
	return r.(*PerUseSite) //nolint:errcheck
}

// Of returns the provider stored in a declaration's side table, or
// [Unresolved] if there is none yet.
func Of(table *attr.Table) Provider {
	if p, ok := attr.Get(table, ProviderKey); ok && p != nil {
		return p
	}
	return Unresolved
}

// Install computes the provider for annotations and stores it in table.
func Install(table *attr.Table, annotations []AnnotationInfo) Provider {
	p := NewProvider(annotations)
	attr.Set(table, ProviderKey, p)
	return p
}

// ParseVersion parses an API version such as "1.9" or "2.0.0".
func ParseVersion(v string) (*semver.Version, error) {
	return semver.NewVersion(v)
}

// MustParseVersion is like [ParseVersion], but panics on error.
func MustParseVersion(v string) *semver.Version {
	version, err := ParseVersion(v)
	if err != nil {
		panic(err)
	}
	return version
}
