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
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bufbuild/lazyresolve/internal/metrics"
)

const metricsComponent = "runner"

type runnerMetrics struct {
	transforms *prometheus.CounterVec
	waits      *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	inFlight   prometheus.Gauge
}

func newRunnerMetrics(reg prometheus.Registerer) *runnerMetrics {
	return &runnerMetrics{
		transforms: metrics.MustRegisterCounterVec(reg, metricsComponent,
			"transforms_total", "Number of phase advances attempted, by phase and result.",
			"phase", "result"),
		waits: metrics.MustRegisterCounterVec(reg, metricsComponent,
			"waits_total", "Number of times a goroutine waited on another's advance, by phase.",
			"phase"),
		duration: metrics.MustRegisterHistogramVec(reg, metricsComponent,
			"transform_duration_seconds", "Time spent running transformers, by phase.",
			nil, "phase"),
		inFlight: metrics.MustRegisterGauge(reg, metricsComponent,
			"advances_in_flight", "Number of phase advances currently claimed by this runner."),
	}
}
