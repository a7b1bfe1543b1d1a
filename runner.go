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
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	slogcontext "github.com/veqryn/slog-context"

	"github.com/bufbuild/lazyresolve/internal/cycle"
	"github.com/bufbuild/lazyresolve/internal/metrics"
	"github.com/bufbuild/lazyresolve/phase"
	"github.com/bufbuild/lazyresolve/state"
)

type cycleError = cycle.Error[Frame]

// Runner advances declarations through the phases of the lattice.
//
// A Runner is safe for concurrent use. It holds no per-declaration state;
// all of that lives in each declaration's [state.Cell].
type Runner struct {
	transformers [phase.Total]Transformer
	registerer   prometheus.Registerer
	metrics      *runnerMetrics
}

// Option is an option for [New].
type Option func(*Runner)

// WithTransformer sets the transformer that computes phase p. Setting it more
// than once for the same phase runs all of them, in order.
//
// Phases without a transformer are advanced without doing anything. Marker
// phases (see [phase.Phase.NoProcessor]) never run a transformer.
func WithTransformer(p phase.Phase, t Transformer) Option {
	return func(r *Runner) {
		switch prev := r.transformers[p].(type) {
		case nil:
			r.transformers[p] = t
		case CompositeTransformer:
			r.transformers[p] = append(slices.Clip(prev), t)
		default:
			r.transformers[p] = CompositeTransformer{prev, t}
		}
	}
}

// WithRegisterer registers the runner's metrics with reg. By default,
// metrics are collected but not registered anywhere.
//
// Each runner registers its own collectors under fixed names, so two runners
// sharing reg panic with a [prometheus.AlreadyRegisteredError]. Give each one
// its own registerer, for instance with [prometheus.WrapRegistererWith].
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(r *Runner) {
		r.registerer = reg
	}
}

// New constructs a new runner.
func New(options ...Option) *Runner {
	r := new(Runner)
	for _, opt := range options {
		opt(r)
	}
	r.metrics = newRunnerMetrics(r.registerer)
	return r
}

// CurrentPhase returns the phase up to which d may currently be read.
// Never blocks.
func (r *Runner) CurrentPhase(d Declaration) phase.Phase {
	return d.ResolveState().Phase()
}

// EnsureLaunchable resolves d far enough that it could be advanced into p.
func (r *Runner) EnsureLaunchable(ctx context.Context, d Declaration, p phase.Phase) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidPhase, p)
	}
	return r.EnsureResolved(ctx, d, p.RequiredToLaunch())
}

// EnsureResolved resolves d to at least target, advancing it one phase at a
// time and waiting for other goroutines that are already advancing it.
//
// On return with a nil error, d is readable at target. Otherwise, d is left
// at whatever phase it had reached, which may be later than where it was
// when this was called. Failures of other goroutines are never returned
// here: a goroutine whose wait was spoiled by another's failure tries the
// phase itself.
func (r *Runner) EnsureResolved(ctx context.Context, d Declaration, target phase.Phase) error {
	if !target.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidPhase, target)
	}

	cell := d.ResolveState()
	for {
		current := cell.Phase()
		if current >= target {
			return nil
		}
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}

		step := current.Next()
		outcome, barrier, err := cell.TryBeginAdvance(step)
		switch {
		case errors.Is(err, state.ErrReentrant):
			return r.reentrant(ctx, d, step)
		case err != nil:
			return &ContractError{Decl: d.String(), Phase: step, Err: err}
		}

		switch outcome {
		case state.AlreadyAtOrPast:
			continue

		case state.Claimed:
			if err := r.advance(ctx, d, step); err != nil {
				return err
			}

		case state.MustWaitForOther:
			// A goroutine started by one of our own transformers would wait
			// forever on an advance further up its chain.
			if onChain(ctx, d) {
				return r.reentrant(ctx, d, step)
			}

			r.metrics.waits.WithLabelValues(step.String()).Inc()
			logger := slogcontext.FromCtx(ctx)
			logger.DebugContext(ctx, "waiting for resolution", slog.String("decl", d.String()), slog.String("phase", step.String()))

			err := barrier.Wait(ctx)
			var stale *state.StaleError
			switch {
			case errors.As(err, &stale):
				logger.DebugContext(ctx, "awaited resolution aborted, retrying",
					slog.String("decl", d.String()), slog.String("phase", step.String()), slog.Any("cause", stale.Cause))
			case err != nil:
				return err
			}
		}
	}
}

// advance runs the transformer for step on d, which the calling goroutine
// has claimed. Whatever happens, the claim is released before returning.
func (r *Runner) advance(ctx context.Context, d Declaration, step phase.Phase) (err error) {
	cell := d.ResolveState()
	logger := slogcontext.FromCtx(ctx).With(slog.String("decl", d.String()), slog.String("phase", step.String()))
	logger.DebugContext(ctx, "claimed")

	r.metrics.inFlight.Inc()
	defer r.metrics.inFlight.Dec()

	// Set before the frame can be observed, cleared before the claim is
	// released.
	frame := &frames{
		Frame:  Frame{Decl: d, Phase: step},
		parent: framesFrom(ctx),
	}
	frame.active.Store(true)

	start := time.Now()
	done := false
	defer func() {
		frame.active.Store(false)
		if done {
			return
		}

		// recover() returns nil only when unwinding due to runtime.Goexit.
		failure := &TransformError{Decl: d.String(), Phase: step, Err: errGoexit}
		if panicked := recover(); panicked != nil {
			failure.Err = nil
			failure.Panic = panicked
			failure.Stack = debug.Stack()
		}
		cell.AbortAdvance(failure)
		r.metrics.transforms.WithLabelValues(step.String(), metrics.ResultPanic).Inc()
		logger.ErrorContext(ctx, "transformer did not return", slog.Any("error", failure))
		err = failure
	}()

	if t := r.transformers[step]; t != nil && !step.NoProcessor() {
		err = t.Transform(context.WithValue(ctx, framesKey{}, frame), d, step)
	}
	done = true
	frame.active.Store(false)
	metrics.ObserveSince(r.metrics.duration.WithLabelValues(step.String()), start)

	if err != nil {
		var ce *ContractError
		if !errors.As(err, &ce) {
			err = &TransformError{Decl: d.String(), Phase: step, Err: err}
		}
		cell.AbortAdvance(err)
		r.metrics.transforms.WithLabelValues(step.String(), metrics.ResultFailure).Inc()
		logger.DebugContext(ctx, "aborted", slog.Any("error", err))
		return err
	}

	cell.CompleteAdvance()
	r.metrics.transforms.WithLabelValues(step.String(), metrics.ResultSuccess).Inc()
	logger.DebugContext(ctx, "completed")
	return nil
}

// reentrant builds the error for a request to resolve d to step while d is
// being advanced further up the current chain of transformers.
func (r *Runner) reentrant(ctx context.Context, d Declaration, step phase.Phase) error {
	var path []Frame
	for f := framesFrom(ctx); f != nil; f = f.parent {
		if f.active.Load() {
			path = append(path, f.Frame)
		}
	}
	slices.Reverse(path)
	if len(path) == 0 {
		path = append(path, Frame{Decl: d, Phase: step})
	}

	cell := d.ResolveState()
	err := cycle.From(path, func(f Frame) bool { return f.Decl.ResolveState() == cell })
	return &ContractError{
		Decl:  d.String(),
		Phase: step,
		Err:   fmt.Errorf("%w: %w", state.ErrReentrant, err),
	}
}

type framesKey struct{}

// frames is the chain of advances running transformers, as seen from within
// one of them. A context can outlive its transformer, so each frame records
// whether its advance still holds the claim.
type frames struct {
	Frame
	parent *frames
	active atomic.Bool
}

func framesFrom(ctx context.Context) *frames {
	f, _ := ctx.Value(framesKey{}).(*frames)
	return f
}

// onChain returns whether the advance currently holding d's claim is one of
// the still-running advances that ctx descends from.
func onChain(ctx context.Context, d Declaration) bool {
	cell := d.ResolveState()
	target, resolving := cell.Load().Resolving()
	if !resolving {
		return false
	}
	for f := framesFrom(ctx); f != nil; f = f.parent {
		if f.Decl.ResolveState() == cell && f.Phase == target && f.active.Load() {
			return true
		}
	}
	return false
}
