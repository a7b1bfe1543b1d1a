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

package phase

import (
	"fmt"
	"iter"
)

const (
	// First is the phase every declaration is created in.
	First = RawFIR
	// Last is the phase in which a declaration is fully resolved.
	Last = BodyResolve

	// Declarations is the phase after which a declaration's signature
	// (supertypes, types, visibility and modality) may be relied upon.
	Declarations = Status
	// AnalyzedDependencies is the phase dependencies compiled elsewhere are
	// considered to be in.
	AnalyzedDependencies = BodyResolve
)

// launchOverrides lists the phases that can start before their immediate
// predecessor is done.
var launchOverrides = map[Phase]Phase{
	Status:    Types,
	Contracts: Status,
}

// At returns the phase with the given ordinal.
//
// Panics if ordinal is out of range.
func At(ordinal int) Phase {
	if ordinal < 0 || ordinal >= Total {
		panic(fmt.Sprintf("phase: ordinal %d out of range [0, %d)", ordinal, Total))
	}
	return Phase(ordinal)
}

// Phases returns an iterator over every phase, in order.
func Phases() iter.Seq[Phase] {
	return func(yield func(Phase) bool) {
		for i := range Total {
			if !yield(Phase(i)) {
				return
			}
		}
	}
}

// Valid returns whether p is one of the phases of the lattice.
func (p Phase) Valid() bool {
	return p >= First && p <= Last
}

// Ordinal returns p's position in the lattice.
func (p Phase) Ordinal() int {
	return int(p)
}

// Next returns the phase after p.
//
// Panics if p is [Last].
func (p Phase) Next() Phase {
	return At(int(p) + 1)
}

// Previous returns the phase before p.
//
// Panics if p is [First].
func (p Phase) Previous() Phase {
	return At(int(p) - 1)
}

// RequiredToLaunch returns the phase a declaration must already be in to
// begin transitioning into p.
//
// This is never greater than p. It is p itself only for [First].
func (p Phase) RequiredToLaunch() Phase {
	if p == First {
		return First
	}
	if req, ok := launchOverrides[p]; ok {
		return req
	}
	return p.Previous()
}

// NoProcessor returns whether p is a marker phase, which no transformation
// is associated with.
func (p Phase) NoProcessor() bool {
	return p == RawFIR
}
