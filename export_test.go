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
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/bufbuild/lazyresolve/phase"
)

// This file exports internal symbols for testing purposes only.

// TransformCount returns how many advances into p ended with result.
func TransformCount(r *Runner, p phase.Phase, result string) float64 {
	return testutil.ToFloat64(r.metrics.transforms.WithLabelValues(p.String(), result))
}

// WaitCount returns how many times a goroutine waited on an advance into p.
func WaitCount(r *Runner, p phase.Phase) float64 {
	return testutil.ToFloat64(r.metrics.waits.WithLabelValues(p.String()))
}

// InFlight returns how many advances r currently holds claims for.
func InFlight(r *Runner) float64 {
	return testutil.ToFloat64(r.metrics.inFlight)
}
