// MIT License
//
// Copyright (c) 2024 talust-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/dispatch/metrics.go
package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the dispatch pipeline.
type Metrics struct {
	Dispatched  *prometheus.CounterVec
	Discarded   prometheus.Counter
	Rejected    *prometheus.CounterVec
	Handled     *prometheus.CounterVec
	TaskLatency *prometheus.HistogramVec
}

// NewMetrics initializes and registers the dispatch metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Dispatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_envelopes_total",
				Help: "Envelopes submitted to the worker pool",
			},
			[]string{"type"},
		),
		Discarded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "dispatch_discarded_total",
				Help: "Envelopes dropped because no handler is registered",
			},
		),
		Rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_rejected_total",
				Help: "Envelopes rejected before their handlers ran",
			},
			[]string{"reason"},
		),
		Handled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_handled_total",
				Help: "Envelopes that completed their handler chain",
			},
			[]string{"type"},
		),
		TaskLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dispatch_task_latency_seconds",
				Help:    "Validation plus handling latency per envelope",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"type"},
		),
	}
	reg.MustRegister(m.Dispatched, m.Discarded, m.Rejected, m.Handled, m.TaskLatency)
	return m
}
