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
	"context"

	"github.com/bufbuild/lazyresolve/attr"
	"github.com/bufbuild/lazyresolve/phase"
	"github.com/bufbuild/lazyresolve/state"
)

// Declaration is anything that can be resolved by a [Runner].
//
// Beyond its resolution state and side table, a declaration is opaque to
// this package.
type Declaration interface {
	// ResolveState returns the declaration's resolution state. This must
	// return the same cell every time.
	ResolveState() *state.Cell
	// Attributes returns the declaration's side table. This must return the
	// same table every time.
	Attributes() *attr.Table

	// String returns a name for the declaration, for errors and logs.
	String() string
}

// Transformer is the logic of a phase: it advances a declaration into that
// phase.
//
// A transformer runs while its declaration is exclusively held, so it may
// freely write the side table slots its phase owns. It may resolve other
// declarations by calling back into the [Runner] with the context it was
// given, but it must not require its own declaration to reach the phase
// being computed, or any later one; see [ErrReentrant].
//
// Returning an error aborts the advance. The declaration stays in the phase
// it was in, and the error is returned from [Runner.EnsureResolved].
type Transformer interface {
	Transform(ctx context.Context, decl Declaration, p phase.Phase) error
}

// TransformerFunc is a [Transformer] implemented by a function.
type TransformerFunc func(context.Context, Declaration, phase.Phase) error

var _ Transformer = TransformerFunc(nil)

// Transform implements [Transformer].
func (f TransformerFunc) Transform(ctx context.Context, decl Declaration, p phase.Phase) error {
	return f(ctx, decl, p)
}

// CompositeTransformer runs several transformers for the same phase, in
// order, stopping at the first error.
type CompositeTransformer []Transformer

var _ Transformer = CompositeTransformer(nil)

// Transform implements [Transformer].
func (c CompositeTransformer) Transform(ctx context.Context, decl Declaration, p phase.Phase) error {
	for _, t := range c {
		if err := t.Transform(ctx, decl, p); err != nil {
			return err
		}
	}
	return nil
}
