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

// Package phase provides [Phase], the lattice of resolution phases.
//
// The lattice is a fixed, process-wide total order. Moving between phases is
// pure ordinal arithmetic, so values of this package may be shared between
// goroutines without synchronization.
//
// # Launching a Phase
//
// To begin a phase, a declaration must already be resolved to
// [Phase.RequiredToLaunch]. For most phases that is the immediately preceding
// phase, but some phases only depend on an earlier one; for example, [Status]
// can begin as soon as [Types] is done, because sealed inheritors are
// irrelevant to computing visibility. Callers that drive resolution still
// step through every phase in order; RequiredToLaunch only describes what a
// phase needs before it may start.
package phase

//go:generate go run github.com/bufbuild/lazyresolve/internal/enum phase.yaml
