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

package state_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/lazyresolve/phase"
	"github.com/bufbuild/lazyresolve/state"
)

func TestUncontended(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var cell state.Cell
	assert.Equal(phase.RawFIR, cell.Phase())
	assert.Equal("Resolved(RAW_FIR)", cell.Load().String())

	outcome, barrier, err := cell.TryBeginAdvance(phase.Imports)
	require.NoError(t, err)
	assert.Equal(state.Claimed, outcome)
	assert.Nil(barrier)
	assert.Equal(phase.RawFIR, cell.Phase(), "phase being computed must not be visible")
	assert.Equal("Resolving(RAW_FIR -> IMPORTS)", cell.Load().String())
	target, ok := cell.Load().Resolving()
	assert.True(ok)
	assert.Equal(phase.Imports, target)

	cell.CompleteAdvance()
	assert.Equal(phase.Imports, cell.Phase())
	_, ok = cell.Load().Resolving()
	assert.False(ok)

	outcome, _, err = cell.TryBeginAdvance(phase.Imports)
	require.NoError(t, err)
	assert.Equal(state.AlreadyAtOrPast, outcome)
	outcome, _, err = cell.TryBeginAdvance(phase.RawFIR)
	require.NoError(t, err)
	assert.Equal(state.AlreadyAtOrPast, outcome)
}

func TestResolvedSnapshotsAreShared(t *testing.T) {
	t.Parallel()

	var a, b state.Cell
	a.Init(phase.Types)
	b.Init(phase.Types)
	assert.Same(t, a.Load(), b.Load())
}

func TestAbortRestores(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var cell state.Cell
	cell.Init(phase.Types)

	outcome, _, err := cell.TryBeginAdvance(phase.SealedClassInheritors)
	require.NoError(t, err)
	require.Equal(t, state.Claimed, outcome)

	cell.AbortAdvance(errors.New("boom"))
	assert.Equal(phase.Types, cell.Phase())
	_, resolving := cell.Load().Resolving()
	assert.False(resolving)

	// The declaration may be claimed again.
	outcome, _, err = cell.TryBeginAdvance(phase.SealedClassInheritors)
	require.NoError(t, err)
	assert.Equal(state.Claimed, outcome)
	cell.CompleteAdvance()
	assert.Equal(phase.SealedClassInheritors, cell.Phase())
}

func TestRequiredToLaunch(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var cell state.Cell
	_, _, err := cell.TryBeginAdvance(phase.Types)
	assert.ErrorIs(err, state.ErrNotLaunchable)
	assert.Equal(phase.RawFIR, cell.Phase())

	_, _, err = cell.TryBeginAdvance(phase.Phase(phase.Total))
	assert.ErrorIs(err, state.ErrInvalidPhase)

	// STATUS only needs TYPES, so it may be launched directly from there.
	cell.Init(phase.Types)
	outcome, _, err := cell.TryBeginAdvance(phase.Status)
	require.NoError(t, err)
	assert.Equal(state.Claimed, outcome)
	assert.Equal(phase.Types, cell.Phase())
	cell.CompleteAdvance()
	assert.Equal(phase.Status, cell.Phase())
}

func TestReentrant(t *testing.T) {
	t.Parallel()

	var cell state.Cell
	outcome, _, err := cell.TryBeginAdvance(phase.Imports)
	require.NoError(t, err)
	require.Equal(t, state.Claimed, outcome)

	_, _, err = cell.TryBeginAdvance(phase.Imports)
	assert.ErrorIs(t, err, state.ErrReentrant)
	_, _, err = cell.TryBeginAdvance(phase.CompilerRequiredAnnotations)
	assert.ErrorIs(t, err, state.ErrReentrant)

	cell.CompleteAdvance()
	assert.Equal(t, phase.Imports, cell.Phase())
}

func TestFinishWithoutClaim(t *testing.T) {
	t.Parallel()

	var cell state.Cell
	assert.Panics(t, func() { cell.CompleteAdvance() })
	assert.Panics(t, func() { cell.AbortAdvance(nil) })

	_, _, err := cell.TryBeginAdvance(phase.Imports)
	require.NoError(t, err)

	// Only the claiming goroutine may finish the advance.
	panicked := make(chan any)
	go func() {
		defer func() { panicked <- recover() }()
		cell.CompleteAdvance()
	}()
	assert.NotNil(t, <-panicked)
	cell.CompleteAdvance()
}

func TestWaitersWoken(t *testing.T) {
	t.Parallel()

	for _, abort := range []bool{false, true} {
		var cell state.Cell
		_, _, err := cell.TryBeginAdvance(phase.Imports)
		require.NoError(t, err)

		const waiters = 8
		barriers := make(chan *state.Barrier, waiters)
		results := make(chan error, waiters)
		var wg sync.WaitGroup
		for range waiters {
			wg.Add(1)
			go func() {
				defer wg.Done()
				outcome, barrier, err := cell.TryBeginAdvance(phase.Imports)
				if err != nil {
					results <- err
					return
				}
				if outcome != state.MustWaitForOther {
					results <- errors.New(outcome.String())
					return
				}
				barriers <- barrier
				results <- barrier.Wait(context.Background())
			}()
		}

		// Every waiter must share the one lazily allocated barrier.
		first := <-barriers
		for range waiters - 1 {
			assert.Same(t, first, <-barriers)
		}
		assert.True(t, cell.Load().Contended())
		assert.Equal(t, "Resolving(RAW_FIR -> IMPORTS, waiters)", cell.Load().String())

		if abort {
			cell.AbortAdvance(errors.New("boom"))
		} else {
			cell.CompleteAdvance()
		}

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("waiters were not woken")
		}

		close(results)
		for err := range results {
			if abort {
				var stale *state.StaleError
				require.ErrorAs(t, err, &stale)
				assert.EqualError(t, stale.Cause, "boom")
				assert.Equal(t, phase.RawFIR, cell.Phase())
			} else {
				require.NoError(t, err)
				assert.Equal(t, phase.Imports, cell.Phase())
			}
		}
	}
}

func TestWaitCancelled(t *testing.T) {
	t.Parallel()

	var cell state.Cell
	_, _, err := cell.TryBeginAdvance(phase.Imports)
	require.NoError(t, err)
	defer cell.CompleteAdvance()

	result := make(chan error, 1)
	ctx, cancel := context.WithCancel(t.Context())
	go func() {
		_, barrier, err := cell.TryBeginAdvance(phase.Imports)
		if err != nil {
			result <- err
			return
		}
		result <- barrier.Wait(ctx)
	}()

	cancel()
	assert.ErrorIs(t, <-result, context.Canceled)
}

func TestRace(t *testing.T) {
	t.Parallel()

	var cell state.Cell
	var claims int
	var mu sync.Mutex

	const n = 32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for cell.Phase() < phase.Imports {
				outcome, barrier, err := cell.TryBeginAdvance(phase.Imports)
				if err != nil {
					t.Error(err)
					return
				}
				switch outcome {
				case state.Claimed:
					mu.Lock()
					claims++
					mu.Unlock()
					cell.CompleteAdvance()
				case state.MustWaitForOther:
					_ = barrier.Wait(context.Background())
				}
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, claims)
	assert.Equal(t, phase.Imports, cell.Phase())
}
