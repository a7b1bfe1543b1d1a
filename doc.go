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

// Package lazyresolve drives declarations of a compiler frontend through an
// ordered sequence of analysis phases, on demand.
//
// Every declaration starts out as raw syntax and is advanced, one phase at a
// time, only as far as some consumer actually needs. The phases follow the
// lattice in package phase:
//  1. RAW_FIR: the declaration as produced by the parser.
//  2. IMPORTS through SUPER_TYPES: names, required annotations and supertypes.
//  3. TYPES through CONTRACTS: signatures, visibility and modality.
//     Also see: phase.Declarations
//  4. IMPLICIT_TYPES_BODY_RESOLVE through BODY_RESOLVE: bodies.
//     Also see: phase.AnalyzedDependencies
//
// Many goroutines may ask for the same declaration at once. Exactly one of
// them advances it into each phase; the others wait, and never observe a
// phase that has not been completely computed. Per-declaration state lives
// in package state, results of each phase in the side table of package attr.
//
// Runner
//
// A Runner resolves a single declaration. It is configured with one
// Transformer per phase, which holds the actual logic of that phase. A
// Transformer may recursively resolve other declarations through the same
// Runner, but never its own declaration to the phase being computed or a
// later one; such requests fail with a ContractError describing the cycle.
//
//	r := lazyresolve.New(
//	    lazyresolve.WithTransformer(phase.Types, typesTransformer),
//	    lazyresolve.WithTransformer(phase.Status, statusTransformer),
//	)
//	err := r.EnsureResolved(ctx, decl, phase.Status)
//
// Driver
//
// A Driver resolves many declarations in parallel with a bounded number of
// goroutines, collecting the error of each.
package lazyresolve
