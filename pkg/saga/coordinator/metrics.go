// Copyright © 2025 jackelyj <dreamerlyj@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
//

package coordinator

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts saga lifecycle events at the orchestrator.
type Metrics struct {
	started       prometheus.Counter
	completed     prometheus.Counter
	failed        prometheus.Counter
	compensations prometheus.Counter
	deadLetters   prometheus.Counter
}

// NewMetrics registers the orchestrator counters with the given registerer.
// Pass a fresh registry in tests to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		started: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sagaflow_sagas_started_total",
			Help: "Number of saga attempts entering the orchestrator.",
		}),
		completed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sagaflow_sagas_completed_total",
			Help: "Number of sagas finishing successfully.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sagaflow_sagas_failed_total",
			Help: "Number of sagas finishing as failed after compensation.",
		}),
		compensations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sagaflow_compensations_dispatched_total",
			Help: "Number of compensation signals sent to participants.",
		}),
		deadLetters: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sagaflow_dead_letters_total",
			Help: "Number of unparseable messages discarded by the orchestrator.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.started, m.completed, m.failed, m.compensations, m.deadLetters)
	}
	return m
}

// SagaStarted records a new saga attempt.
func (m *Metrics) SagaStarted() { m.started.Inc() }

// SagaCompleted records a successful terminal outcome.
func (m *Metrics) SagaCompleted() { m.completed.Inc() }

// SagaFailed records a failed terminal outcome.
func (m *Metrics) SagaFailed() { m.failed.Inc() }

// CompensationDispatched records one compensation signal.
func (m *Metrics) CompensationDispatched() { m.compensations.Inc() }

// DeadLetter records one discarded unparseable message.
func (m *Metrics) DeadLetter() { m.deadLetters.Inc() }
