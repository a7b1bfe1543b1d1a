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

package phase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/lazyresolve/phase"
)

func TestOrder(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var all []phase.Phase
	for p := range phase.Phases() {
		all = append(all, p)
	}
	assert.Len(all, phase.Total)
	assert.Equal(phase.First, all[0])
	assert.Equal(phase.Last, all[len(all)-1])

	for i, p := range all {
		assert.Equal(i, p.Ordinal())
		assert.Equal(p, phase.At(i))
		assert.True(p.Valid())
		if i > 0 {
			assert.Equal(all[i-1], p.Previous())
			assert.Equal(p, all[i-1].Next())
		}
	}
}

func TestEnds(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { phase.First.Previous() })
	assert.Panics(t, func() { phase.Last.Next() })
	assert.Panics(t, func() { phase.At(-1) })
	assert.Panics(t, func() { phase.At(phase.Total) })
	assert.False(t, phase.Phase(-1).Valid())
	assert.False(t, phase.Phase(phase.Total).Valid())
}

func TestRequiredToLaunch(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal(phase.RawFIR, phase.RawFIR.RequiredToLaunch())
	assert.Equal(phase.RawFIR, phase.Imports.RequiredToLaunch())
	assert.Equal(phase.Types, phase.Status.RequiredToLaunch())
	assert.Equal(phase.Status, phase.Contracts.RequiredToLaunch())
	assert.Equal(phase.AnnotationArguments, phase.BodyResolve.RequiredToLaunch())

	var prev phase.Phase
	for p := range phase.Phases() {
		req := p.RequiredToLaunch()
		assert.LessOrEqual(req, p, "%v", p)
		if p != phase.First {
			assert.Less(req, p, "%v", p)
		}
		assert.GreaterOrEqual(req, prev, "%v requires a phase earlier than its predecessor does", p)
		prev = req
	}
}

func TestNames(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal("STATUS", phase.Status.String())
	assert.Equal("phase.Status", phase.Status.GoString())
	assert.Equal("Phase(99)", phase.Phase(99).String())

	for p := range phase.Phases() {
		got, ok := phase.ByName(p.String())
		assert.True(ok)
		assert.Equal(p, got)
	}
	_, ok := phase.ByName("status")
	assert.False(ok)

	assert.True(phase.RawFIR.NoProcessor())
	assert.False(phase.Imports.NoProcessor())
}
