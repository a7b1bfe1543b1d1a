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

package lazyresolve

import (
	"errors"
	"fmt"

	"github.com/bufbuild/lazyresolve/phase"
	"github.com/bufbuild/lazyresolve/state"
)

// ErrInvalidPhase is returned when asked to resolve to a value that is not a
// phase of the lattice.
var ErrInvalidPhase = state.ErrInvalidPhase

var errGoexit = errors.New("transformer called runtime.Goexit")

// TransformError is returned when the transformer for a phase fails, either
// by returning an error or by panicking.
//
// The declaration is left in the phase it was in before the attempt.
type TransformError struct {
	// The declaration being resolved.
	Decl string
	// The phase that could not be computed.
	Phase phase.Phase

	// The error returned by the transformer. Nil if it panicked.
	Err error

	// The recovered panic value and the stack it was raised on, if any.
	Panic any
	Stack []byte
}

// Error implements [error].
func (e *TransformError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("resolving %s to %v: panic: %v", e.Decl, e.Phase, e.Panic)
	}
	return fmt.Sprintf("resolving %s to %v: %v", e.Decl, e.Phase, e.Err)
}

// Unwrap returns the error returned by the transformer.
func (e *TransformError) Unwrap() error {
	return e.Err
}

// ContractError is returned when a caller misuses the runner: asking for a
// phase that cannot be launched yet, or waiting on a declaration that the
// same chain of transformers is already advancing.
//
// Contract errors indicate bugs in transformers, not in the code being
// compiled.
type ContractError struct {
	Decl  string
	Phase phase.Phase
	Err   error
}

// Error implements [error].
func (e *ContractError) Error() string {
	return fmt.Sprintf("contract violation resolving %s to %v: %v", e.Decl, e.Phase, e.Err)
}

// Unwrap returns the underlying violation, such as [state.ErrReentrant].
func (e *ContractError) Unwrap() error {
	return e.Err
}

// Frame is an advance in progress on the current chain of transformers.
type Frame struct {
	Decl  Declaration
	Phase phase.Phase
}

// String implements [fmt.Stringer].
func (f Frame) String() string {
	return fmt.Sprintf("%s@%v", f.Decl, f.Phase)
}

// Frames returns the chain of advances that led to err, outermost first, if
// err reports a re-entrant resolution.
func Frames(err error) []Frame {
	var ce *ContractError
	if !errors.As(err, &ce) {
		return nil
	}
	var cycle *cycleError
	if !errors.As(ce.Err, &cycle) {
		return nil
	}
	return cycle.Cycle
}
