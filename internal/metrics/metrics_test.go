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

package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/lazyresolve/internal/metrics"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewPedanticRegistry()
	c := metrics.MustRegisterCounterVec(reg, "test", "things_total", "Things.", "kind")
	h := metrics.MustRegisterHistogramVec(reg, "test", "duration_seconds", "Durations.", nil, "kind")
	g := metrics.MustRegisterGauge(reg, "test", "inflight", "In flight.")

	c.WithLabelValues("a").Inc()
	c.WithLabelValues("a").Inc()
	metrics.ObserveSince(h.WithLabelValues("a"), time.Now())
	g.Set(3)

	assert.InDelta(t, 2, testutil.ToFloat64(c.WithLabelValues("a")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(g), 0)

	n, err := testutil.GatherAndCount(reg, "lazyresolve_test_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Registering the same collector twice must fail.
	assert.Panics(t, func() {
		metrics.MustRegisterGauge(reg, "test", "inflight", "In flight.")
	})
}

func TestUnregistered(t *testing.T) {
	t.Parallel()

	c := metrics.MustRegisterCounterVec(nil, "test", "things_total", "Things.", "kind")
	c.WithLabelValues("b").Inc()
	assert.InDelta(t, 1, testutil.ToFloat64(c.WithLabelValues("b")), 0)
}
