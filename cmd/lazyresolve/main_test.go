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

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testdata = "../../internal/scenario/testdata/"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), err
}

func TestPhases(t *testing.T) {
	t.Parallel()

	out, err := run(t, "phases")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	var status string
	for _, line := range lines {
		if strings.Contains(line, " STATUS ") {
			status = line
			break
		}
	}
	require.NotEmpty(t, status, out)
	assert.Contains(t, status, "TYPES")
	assert.Contains(t, out, "RAW_FIR")
	assert.Contains(t, out, "BODY_RESOLVE")
}

func TestResolveTree(t *testing.T) {
	t.Parallel()

	out, err := run(t, "resolve", "--output", "tree", "--parallelism", "1", testdata+"basic.yaml")
	require.NoError(t, err)
	assert.Equal(t, `basic (to STATUS)
├── a.Base  STATUS, internal abstract
├── a.Foo   STATUS, public final
└── a.bar   STATUS, public open
`, out)
}

func TestResolveFilterAndPhase(t *testing.T) {
	t.Parallel()

	out, err := run(t, "resolve", "--output", "tree", "--filter", "a.B*", "--phase", "types", testdata+"basic.yaml")
	require.NoError(t, err)
	assert.Equal(t, `basic (to TYPES)
└── a.Base  TYPES
`, out)
}

func TestResolveDeprecations(t *testing.T) {
	t.Parallel()

	out, err := run(t, "resolve", "--output", "tree", "--api-version", "1.8", "--filter", "c.Old", testdata+"deprecation.yaml")
	require.NoError(t, err)
	assert.Equal(t, `deprecation (to COMPILER_REQUIRED_ANNOTATIONS)
└── c.Old  COMPILER_REQUIRED_ANNOTATIONS
    └── deprecated: error: use New
`, out)
}

func TestResolveFailure(t *testing.T) {
	t.Parallel()

	out, err := run(t, "resolve", "--trace", testdata+"failure.yaml")
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, err.Error(), "2 of them")
	assert.Contains(t, out, "scripted failure")
	assert.Contains(t, out, "trace of failure:")
	assert.Contains(t, out, "b.Fine STATUS")
}

func TestResolveGlob(t *testing.T) {
	t.Parallel()

	out, err := run(t, "resolve", "--phase", "IMPORTS", testdata+"*.yaml")
	require.NoError(t, err)
	for _, name := range []string{"basic", "cycle", "deprecation", "failure"} {
		assert.Contains(t, out, name+" (to IMPORTS)")
	}
}

func TestResolveBadArgs(t *testing.T) {
	t.Parallel()

	_, err := run(t, "resolve", testdata+"missing.yaml")
	require.ErrorContains(t, err, "no scenario files match")

	_, err = run(t, "resolve", "--phase", "LINKING", testdata+"basic.yaml")
	require.ErrorContains(t, err, `unknown phase "LINKING"`)

	_, err = run(t, "resolve", "--output", "json", testdata+"basic.yaml")
	require.ErrorContains(t, err, "must be one of table, tree")

	_, err = run(t, "--loglevel", "trace", "phases")
	require.Error(t, err)
}
