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

// Package metrics contains constructors for the prometheus collectors used
// across the module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace is the prefix of every metric exported by this module.
const Namespace = "lazyresolve"

const (
	// ResultSuccess labels an operation that finished successfully.
	ResultSuccess = "success"
	// ResultFailure labels an operation that returned an error.
	ResultFailure = "failure"
	// ResultPanic labels an operation that panicked or exited its goroutine.
	ResultPanic = "panic"
)

// MustRegisterCounterVec creates a counter vector and registers it with r,
// if r is not nil.
func MustRegisterCounterVec(r prometheus.Registerer, component, name, help string, labelNames ...string) *prometheus.CounterVec {
	m := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: component,
		Name:      name,
		Help:      help,
	}, labelNames)
	mustRegister(r, m)
	return m
}

// MustRegisterGauge creates a gauge and registers it with r, if r is not nil.
func MustRegisterGauge(r prometheus.Registerer, component, name, help string) prometheus.Gauge {
	m := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: component,
		Name:      name,
		Help:      help,
	})
	mustRegister(r, m)
	return m
}

// MustRegisterHistogramVec creates a histogram vector and registers it with
// r, if r is not nil. A nil buckets uses [prometheus.DefBuckets].
func MustRegisterHistogramVec(r prometheus.Registerer, component, name, help string, buckets []float64, labelNames ...string) *prometheus.HistogramVec {
	m := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: component,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}, labelNames)
	mustRegister(r, m)
	return m
}

// ObserveSince records the seconds elapsed since start.
func ObserveSince(o prometheus.Observer, start time.Time) {
	o.Observe(time.Since(start).Seconds())
}

func mustRegister(r prometheus.Registerer, c prometheus.Collector) {
	if r != nil {
		r.MustRegister(c)
	}
}
