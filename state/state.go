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

// Package state provides [Cell], the per-declaration resolution state.
//
// A declaration is either resolved to some phase and idle, or exactly one
// goroutine is advancing it into a later phase. Cells move between these
// states only through [Cell.TryBeginAdvance], [Cell.CompleteAdvance] and
// [Cell.AbortAdvance], each of which is a single atomic transition.
//
// Goroutines that need a declaration another goroutine is currently
// advancing block on a [Barrier]. Barriers are allocated only once a second
// goroutine actually contends for a declaration; the uncontended path never
// touches a mutex or a channel.
package state

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/petermattis/goid"

	"github.com/bufbuild/lazyresolve/phase"
)

var (
	// ErrInvalidPhase is returned when asked to advance to a value that is
	// not a phase of the lattice.
	ErrInvalidPhase = errors.New("not a resolution phase")

	// ErrNotLaunchable is returned when asked to advance a declaration into
	// a phase whose [phase.Phase.RequiredToLaunch] it has not reached.
	ErrNotLaunchable = errors.New("phase cannot be launched yet")

	// ErrReentrant is returned when a goroutine asks to wait on a
	// declaration that it is itself advancing. Waiting would never finish.
	ErrReentrant = errors.New("re-entrant resolution")
)

// Outcome is the result of [Cell.TryBeginAdvance].
type Outcome int8

const (
	// Claimed means the caller now exclusively advances the declaration and
	// must call exactly one of CompleteAdvance or AbortAdvance.
	Claimed Outcome = iota
	// AlreadyAtOrPast means the declaration is already readable at the
	// target phase; there is nothing to do.
	AlreadyAtOrPast
	// MustWaitForOther means another goroutine is advancing the declaration.
	// The caller should wait on the returned [Barrier] and then look again.
	MustWaitForOther
)

// String implements [fmt.Stringer].
func (o Outcome) String() string {
	switch o {
	case Claimed:
		return "Claimed"
	case AlreadyAtOrPast:
		return "AlreadyAtOrPast"
	case MustWaitForOther:
		return "MustWaitForOther"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// State is an immutable snapshot of a [Cell].
type State struct {
	phase     phase.Phase // Resolved phase, or the phase being advanced from.
	target    phase.Phase
	resolving bool

	owner   int64    // Goroutine advancing the declaration.
	barrier *Barrier // Allocated by the first waiter.
}

// resolved holds the snapshot for each idle phase, so that completing an
// advance does not allocate.
var resolved = func() (states [phase.Total]State) {
	for p := range phase.Phases() {
		states[p] = State{phase: p}
	}
	return states
}()

// Phase returns the phase up to which the declaration may be read.
//
// While resolving, this is the phase being advanced from; the phase being
// computed is never visible.
func (s *State) Phase() phase.Phase {
	return s.phase
}

// Resolving returns whether some goroutine is advancing the declaration, and
// if so, into which phase.
func (s *State) Resolving() (target phase.Phase, ok bool) {
	return s.target, s.resolving
}

// Contended returns whether any goroutine is waiting on this advance.
func (s *State) Contended() bool {
	return s.barrier != nil
}

// String implements [fmt.Stringer].
func (s *State) String() string {
	if !s.resolving {
		return fmt.Sprintf("Resolved(%v)", s.phase)
	}
	var buf strings.Builder
	fmt.Fprintf(&buf, "Resolving(%v -> %v", s.phase, s.target)
	if s.barrier != nil {
		buf.WriteString(", waiters")
	}
	buf.WriteString(")")
	return buf.String()
}

// Cell is the resolution state of a single declaration.
//
// The zero value is resolved to [phase.First]. A Cell must not be copied
// after first use.
type Cell struct {
	state atomic.Pointer[State]
}

// Init sets the phase a cell starts out in, for declarations that are
// created already resolved, such as those loaded from compiled dependencies.
//
// Must be called before the cell is shared with other goroutines.
func (c *Cell) Init(p phase.Phase) {
	if !p.Valid() {
		panic(fmt.Sprintf("state: %v: %v", ErrInvalidPhase, p))
	}
	c.state.Store(&resolved[p])
}

// Load returns the current state snapshot.
func (c *Cell) Load() *State {
	if s := c.state.Load(); s != nil {
		return s
	}
	return &resolved[phase.First]
}

// Phase returns the phase up to which the declaration may currently be read.
//
// Never blocks.
func (c *Cell) Phase() phase.Phase {
	return c.Load().phase
}

// TryBeginAdvance attempts to claim the declaration for advancing it into
// target.
//
// The declaration may be claimed only if it is idle and has reached
// target.RequiredToLaunch(); otherwise this returns [ErrNotLaunchable]. If
// another goroutine holds the declaration, this returns MustWaitForOther
// together with the barrier to wait on, allocating it if this is the first
// waiter. If the calling goroutine itself holds the declaration, this
// returns [ErrReentrant].
func (c *Cell) TryBeginAdvance(target phase.Phase) (Outcome, *Barrier, error) {
	if !target.Valid() {
		return 0, nil, fmt.Errorf("%w: %v", ErrInvalidPhase, target)
	}

	var me int64
	for {
		raw := c.state.Load()
		s := raw
		if s == nil {
			s = &resolved[phase.First]
		}

		if s.phase >= target {
			return AlreadyAtOrPast, nil, nil
		}

		if me == 0 {
			me = goid.Get()
		}

		if !s.resolving {
			if req := target.RequiredToLaunch(); s.phase < req {
				return 0, nil, fmt.Errorf("%w: %v requires %v, have %v", ErrNotLaunchable, target, req, s.phase)
			}

			next := &State{
				phase:     s.phase,
				target:    target,
				resolving: true,
				owner:     me,
			}
			if c.state.CompareAndSwap(raw, next) {
				return Claimed, nil, nil
			}
			continue
		}

		if s.owner == me {
			return 0, nil, fmt.Errorf("%w: already advancing %v -> %v", ErrReentrant, s.phase, s.target)
		}

		if s.barrier != nil {
			return MustWaitForOther, s.barrier, nil
		}

		next := *s
		next.barrier = newBarrier()
		if c.state.CompareAndSwap(raw, &next) {
			return MustWaitForOther, next.barrier, nil
		}
	}
}

// CompleteAdvance finishes an advance claimed by the calling goroutine,
// making the target phase readable and waking all waiters.
//
// Panics if the calling goroutine does not hold the declaration.
func (c *Cell) CompleteAdvance() {
	c.finish(true, nil)
}

// AbortAdvance abandons an advance claimed by the calling goroutine. The
// declaration goes back to the phase it was in before the claim, and all
// waiters are woken with cause; see [StaleError].
//
// Panics if the calling goroutine does not hold the declaration.
func (c *Cell) AbortAdvance(cause error) {
	if cause == nil {
		cause = errAborted
	}
	c.finish(false, cause)
}

func (c *Cell) finish(complete bool, cause error) {
	me := goid.Get()
	for {
		// Waiters may install a barrier concurrently, so this is a CAS loop
		// rather than a plain store.
		raw := c.state.Load()
		if raw == nil || !raw.resolving {
			panic("state: no advance in progress")
		}
		if raw.owner != me {
			panic(fmt.Sprintf("state: advance %v is held by goroutine %d, not %d", raw, raw.owner, me))
		}

		to := raw.phase
		if complete {
			to = raw.target
		}
		if c.state.CompareAndSwap(raw, &resolved[to]) {
			if raw.barrier != nil {
				raw.barrier.release(cause)
			}
			return
		}
	}
}
