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

package deprecation_test

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/lazyresolve/attr"
	"github.com/bufbuild/lazyresolve/deprecation"
)

var (
	v10 = deprecation.MustParseVersion("1.0")
	v15 = deprecation.MustParseVersion("1.5")
	v17 = deprecation.MustParseVersion("1.7")
	v20 = deprecation.MustParseVersion("2.0")
	v30 = deprecation.MustParseVersion("3.0")
)

func TestSinceGate(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	p := deprecation.NewProvider([]deprecation.AnnotationInfo{{
		Kind:         deprecation.DeprecatedSince,
		WarningSince: v15,
		ErrorSince:   v20,
		HiddenSince:  v30,
		Message:      "use Bar",
	}})

	before := p.DeprecationsInfo(v10)
	require.NotNil(t, before)
	assert.True(before.IsEmpty())
	assert.Nil(before.ForSite(deprecation.Getter))

	at := p.DeprecationsInfo(v15)
	require.NotNil(t, at.All)
	assert.Equal(deprecation.Warning, at.All.Level)
	assert.Equal(deprecation.Error, p.DeprecationsInfo(v20).All.Level)
	assert.Equal(deprecation.Hidden, p.DeprecationsInfo(v30).All.Level)
	assert.Equal(deprecation.Hidden, p.DeprecationsInfo(nil).All.Level)
	assert.Equal("warning: use Bar", at.All.String())
}

func TestMemoized(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	p := deprecation.NewProvider([]deprecation.AnnotationInfo{{
		Kind:         deprecation.DeprecatedSince,
		WarningSince: v15,
	}})

	first := p.DeprecationsInfo(v20)
	assert.Same(first, p.DeprecationsInfo(v20))
	// Equal versions spelled differently share a cache entry.
	assert.Same(first, p.DeprecationsInfo(deprecation.MustParseVersion("2.0.0")))
	assert.NotSame(first, p.DeprecationsInfo(v10))

	var wg sync.WaitGroup
	results := make([]*deprecation.PerUseSite, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = p.DeprecationsInfo(v17)
		}()
	}
	wg.Wait()
	for _, r := range results {
		assert.Same(results[0], r)
	}
}

func TestFirstApplicableWins(t *testing.T) {
	t.Parallel()

	p := deprecation.NewProvider([]deprecation.AnnotationInfo{
		{Kind: deprecation.DeprecatedSince, ErrorSince: v20, Message: "gated"},
		{Kind: deprecation.Deprecated, Level: deprecation.Warning, Message: "plain"},
		{Kind: deprecation.Deprecated, Site: deprecation.Getter, Level: deprecation.Error, Message: "getter", PropagatesToOverrides: true},
		{Kind: deprecation.Deprecated, Site: deprecation.Getter, Level: deprecation.Hidden, Message: "shadowed"},
	})

	tests := []struct {
		name    string
		version string
		want    *deprecation.PerUseSite
	}{
		{
			name:    "gate closed",
			version: "1.0",
			want: &deprecation.PerUseSite{
				All: &deprecation.Info{Level: deprecation.Warning, Message: "plain"},
				BySite: map[deprecation.UseSite]*deprecation.Info{
					deprecation.Getter: {Level: deprecation.Error, Message: "getter", PropagatesToOverrides: true},
				},
			},
		},
		{
			name:    "gate open",
			version: "2.1",
			want: &deprecation.PerUseSite{
				All: &deprecation.Info{Level: deprecation.Error, Message: "gated"},
				BySite: map[deprecation.UseSite]*deprecation.Info{
					deprecation.Getter: {Level: deprecation.Error, Message: "getter", PropagatesToOverrides: true},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := p.DeprecationsInfo(deprecation.MustParseVersion(tt.version))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DeprecationsInfo(%s) mismatch (-want +got):\n%s", tt.version, diff)
			}
		})
	}

	got := p.DeprecationsInfo(v10)
	assert.Equal(t, "plain", got.ForSite(deprecation.Setter).Message)
	assert.Equal(t, "getter", got.ForSite(deprecation.Getter).Message)
}

func TestFutureAPI(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	p := deprecation.NewProvider([]deprecation.AnnotationInfo{{
		Kind:  deprecation.SinceVersion,
		Since: v15,
	}})

	old := p.DeprecationsInfo(v10)
	require.NotNil(t, old.All)
	assert.Equal(deprecation.Hidden, old.All.Level)
	assert.Equal("available since API version 1.5", old.All.Message)

	assert.True(p.DeprecationsInfo(v20).IsEmpty())
	assert.True(p.DeprecationsInfo(nil).IsEmpty())
}

func TestUnresolvedVersusEmpty(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var table attr.Table
	assert.Equal(deprecation.Unresolved, deprecation.Of(&table))
	assert.Nil(deprecation.Of(&table).DeprecationsInfo(v10))

	deprecation.Install(&table, nil)
	assert.Equal(deprecation.Empty, deprecation.Of(&table))
	info := deprecation.Of(&table).DeprecationsInfo(v10)
	require.NotNil(t, info)
	assert.True(info.IsEmpty())

	var nilInfo *deprecation.PerUseSite
	assert.False(nilInfo.IsEmpty())
	assert.Nil(nilInfo.ForSite(deprecation.AllSites))
}

func TestNames(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	level, ok := deprecation.LevelByName("hidden")
	assert.True(ok)
	assert.Equal(deprecation.Hidden, level)
	site, ok := deprecation.UseSiteByName("get")
	assert.True(ok)
	assert.Equal(deprecation.Getter, site)
	kind, ok := deprecation.KindByName("deprecated-since")
	assert.True(ok)
	assert.Equal(deprecation.DeprecatedSince, kind)
	_, ok = deprecation.KindByName("Deprecated")
	assert.False(ok)
}
