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

package scenario

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/bufbuild/lazyresolve"
	"github.com/bufbuild/lazyresolve/fir"
	"github.com/bufbuild/lazyresolve/phase"
)

// ErrScripted is the error returned by a phase a scenario declares to fail.
var ErrScripted = errors.New("scripted failure")

// Trace records the phases run by a scenario's transformers. It is safe for
// concurrent use; a nil *Trace records nothing.
type Trace struct {
	mu    sync.Mutex
	lines []string
}

func (t *Trace) add(d *fir.Declaration, p phase.Phase, err error) {
	if t == nil {
		return
	}
	line := fmt.Sprintf("%s %v", d.Name, p)
	if err != nil {
		line += ": " + err.Error()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, line)
}

// Lines returns the recorded lines, in the order they were recorded.
func (t *Trace) Lines() []string {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.lines)
}

// NewRunner returns a runner whose transformers act out s.
//
// For every phase that runs logic, the transformer for a declaration:
//  1. Resolves the declarations it depends on in that phase, to that phase.
//  2. Fails with [ErrScripted] if the declaration is scripted to fail there.
//  3. Computes deprecations in COMPILER_REQUIRED_ANNOTATIONS, and the
//     resolved status in STATUS.
//
// Each run is recorded in trace, which may be nil. Further options are
// passed on to [lazyresolve.New].
func (s *Scenario) NewRunner(trace *Trace, options ...lazyresolve.Option) *lazyresolve.Runner {
	var r *lazyresolve.Runner
	t := lazyresolve.TransformerFunc(func(ctx context.Context, decl lazyresolve.Declaration, p phase.Phase) error {
		d, ok := decl.(*fir.Declaration)
		if !ok {
			return fmt.Errorf("scenario: unexpected declaration type %T", decl)
		}
		err := s.transform(ctx, r, d, p)
		trace.add(d, p, err)
		return err
	})

	options = slices.Clone(options)
	for p := range phase.Phases() {
		if !p.NoProcessor() {
			options = append(options, lazyresolve.WithTransformer(p, t))
		}
	}
	r = lazyresolve.New(options...)
	return r
}

func (s *Scenario) transform(ctx context.Context, r *lazyresolve.Runner, d *fir.Declaration, p phase.Phase) error {
	sc := s.scripts[d]
	if sc == nil {
		return fmt.Errorf("scenario: %s is not part of %s", d.Name, s.Name)
	}

	for _, dep := range sc.depends[p] {
		if err := r.EnsureResolved(ctx, dep, p); err != nil {
			return err
		}
	}

	if sc.fails && sc.fail == p {
		return ErrScripted
	}

	switch p {
	case phase.CompilerRequiredAnnotations:
		fir.ResolveDeprecations(d)
	case phase.Status:
		if _, err := fir.ResolveStatus(d); err != nil {
			return err
		}
	}
	return nil
}

// Declarations returns s's declarations as runner declarations.
func (s *Scenario) Declarations() []lazyresolve.Declaration {
	out := make([]lazyresolve.Declaration, len(s.Decls))
	for i, d := range s.Decls {
		out[i] = d
	}
	return out
}
