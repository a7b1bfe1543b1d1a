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

package cycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/lazyresolve/internal/cycle"
)

type node string

func (n node) String() string { return "<" + string(n) + ">" }

func TestFrom(t *testing.T) {
	t.Parallel()

	err := cycle.From([]string{"a", "b", "c"}, func(s string) bool { return s == "b" })
	assert.Equal(t, []string{"b", "c", "b"}, err.Cycle)
	assert.Equal(t, `cycle detected: "b" -> "c" -> "b"`, err.Error())

	err = cycle.From([]string{"a", "b"}, func(string) bool { return false })
	assert.Equal(t, []string{"a", "b", "a"}, err.Cycle)

	err = cycle.From[string](nil, func(string) bool { return true })
	assert.Empty(t, err.Cycle)
}

func TestStringer(t *testing.T) {
	t.Parallel()

	err := cycle.From([]node{"x", "y"}, func(n node) bool { return n == "x" })
	assert.Equal(t, "cycle detected: <x> -> <y> -> <x>", err.Error())
}
