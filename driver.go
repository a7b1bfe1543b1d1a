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
	"log/slog"
	"runtime"

	"github.com/go-logr/logr"
	slogcontext "github.com/veqryn/slog-context"
	"golang.org/x/sync/semaphore"

	"github.com/bufbuild/lazyresolve/phase"
)

// Driver resolves many declarations at once, in parallel.
//
// Only the Runner field is required.
type Driver struct {
	// Runner resolves each individual declaration.
	Runner *Runner
	// MaxParallelism is the maximum number of declarations resolved at the
	// same time. If zero or negative, this is the lesser of GOMAXPROCS and
	// the number of CPUs.
	//
	// Transformers that resolve other declarations do so on the goroutine
	// they were called on, without taking another slot, so dependencies do
	// not count against this limit.
	MaxParallelism int
	// FailFast stops resolving further declarations as soon as one fails.
	// Declarations not resolved because of this report the cause of the
	// cancellation as their error.
	FailFast bool
	// Logger receives a record for each declaration resolved, and the debug
	// records of the runner. Defaults to discarding everything.
	Logger logr.Logger
}

// Resolve resolves every one of decls to target.
//
// The returned slice holds the error for each declaration, in the same
// order; entries for declarations that were resolved successfully are nil.
// The second return value is non-nil only if ctx was done before all
// declarations finished.
func (d *Driver) Resolve(ctx context.Context, target phase.Phase, decls ...Declaration) ([]error, error) {
	if len(decls) == 0 {
		return nil, nil
	}

	parent := ctx
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	par := d.MaxParallelism
	if par <= 0 {
		par = min(runtime.GOMAXPROCS(-1), runtime.NumCPU())
	}

	// The zero logger discards everything.
	logger := d.Logger
	if logger.GetSink() != nil {
		ctx = slogcontext.NewCtx(ctx, slog.New(logr.ToSlogHandler(logger)))
	}

	e := &driverExecutor{
		d:      d,
		s:      semaphore.NewWeighted(int64(par)),
		cancel: cancel,
		logger: logger,
	}

	results := make([]*driverResult, len(decls))
	for i, decl := range decls {
		results[i] = e.resolve(ctx, target, decl)
	}

	errs := make([]error, len(decls))
	for i, r := range results {
		select {
		case <-r.ready:
			errs[i] = r.err
		case <-parent.Done():
			return errs, context.Cause(parent)
		}
	}
	return errs, nil
}

type driverResult struct {
	ready chan struct{}
	err   error
}

func (r *driverResult) finish(err error) {
	r.err = err
	close(r.ready)
}

type driverExecutor struct {
	d      *Driver
	s      *semaphore.Weighted
	cancel context.CancelCauseFunc
	logger logr.Logger
}

func (e *driverExecutor) resolve(ctx context.Context, target phase.Phase, decl Declaration) *driverResult {
	r := &driverResult{ready: make(chan struct{})}
	go func() {
		e.doResolve(ctx, target, decl, r)
	}()
	return r
}

func (e *driverExecutor) doResolve(ctx context.Context, target phase.Phase, decl Declaration, r *driverResult) {
	if err := e.s.Acquire(ctx, 1); err != nil {
		r.finish(context.Cause(ctx))
		return
	}
	defer e.s.Release(1)

	err := e.d.Runner.EnsureResolved(ctx, decl, target)
	if err != nil {
		e.logger.V(1).Info("resolution failed", "decl", decl.String(), "phase", target.String(), "error", err.Error())
		if e.d.FailFast {
			e.cancel(err)
		}
	} else {
		e.logger.V(1).Info("resolved", "decl", decl.String(), "phase", target.String())
	}
	r.finish(err)
}
