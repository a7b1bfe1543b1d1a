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

package state

import (
	"context"
	"errors"
	"fmt"
)

var errAborted = errors.New("advance aborted")

// Barrier is what goroutines waiting on another goroutine's advance block on.
//
// A barrier is released exactly once, when the advance it belongs to
// completes or aborts.
type Barrier struct {
	done  chan struct{}
	cause error // Written before done is closed.
}

func newBarrier() *Barrier {
	return &Barrier{done: make(chan struct{})}
}

// Done returns a channel that is closed when the barrier is released.
func (b *Barrier) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the barrier is released or ctx is done.
//
// Returns nil if the advance completed. If it was aborted, returns a
// [*StaleError]; the waiter must not assume the declaration advanced, and
// should look at the cell again. If ctx is done first, returns its cause.
func (b *Barrier) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		if b.cause != nil {
			return &StaleError{Cause: b.cause}
		}
		return nil
	case <-ctx.Done():
		return context.Cause(ctx)
	}
}

func (b *Barrier) release(cause error) {
	b.cause = cause
	close(b.done)
}

// StaleError is returned by [Barrier.Wait] when the advance being waited on
// was aborted.
type StaleError struct {
	Cause error
}

// Error implements [error].
func (e *StaleError) Error() string {
	return fmt.Sprintf("awaited resolution was aborted: %v", e.Cause)
}

// Unwrap returns the reason the advance was aborted.
func (e *StaleError) Unwrap() error {
	return e.Cause
}
