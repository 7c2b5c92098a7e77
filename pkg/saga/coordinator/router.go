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
	"fmt"
	"time"

	"github.com/orchestrated-saga/sagaflow/pkg/saga"
)

// Decision is the router's verdict for one envelope: where it goes next and
// whether that destination is terminal.
type Decision struct {
	Topic    saga.Topic
	Terminal bool

	// Compensation is true when the destination is a participant's fail
	// topic, i.e. a compensation signal rather than forward work.
	Compensation bool
}

// Router decides, after every step, what happens next. It is a pure
// function of the envelope (plus an injected clock for the saga deadline):
// the same envelope always routes the same way.
type Router struct {
	topo     *Topology
	deadline time.Duration
	now      func() time.Time
}

// RouterOption customizes a Router.
type RouterOption func(*Router)

// WithDeadline sets the maximum saga age. A successful outcome arriving
// after the deadline is routed to compensation instead of the next step,
// so a stalled saga cannot hold resources forever. Zero disables it.
func WithDeadline(d time.Duration) RouterOption {
	return func(r *Router) { r.deadline = d }
}

// WithClock replaces the deadline clock, for tests.
func WithClock(now func() time.Time) RouterOption {
	return func(r *Router) { r.now = now }
}

// NewRouter creates a router over the given topology.
func NewRouter(topo *Topology, opts ...RouterOption) (*Router, error) {
	if topo == nil {
		return nil, fmt.Errorf("router requires a topology")
	}
	r := &Router{topo: topo, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Route maps an envelope to its next topic.
//
// SUCCESS from the orchestrator itself means a new saga: it goes to the
// first step. SUCCESS from step i goes to step i+1, or to the terminal
// success topic after the last step. FAIL and ROLLBACK_PENDING unwind the
// saga: the most recently succeeded participant that has not yet been
// compensated receives a compensation signal, and when none remains the
// envelope goes to the terminal fail topic.
func (r *Router) Route(event *saga.Event) (Decision, error) {
	if event == nil {
		return Decision{}, fmt.Errorf("cannot route nil event")
	}
	switch event.Status {
	case saga.StatusSuccess:
		if r.expired(event) {
			return r.compensate(event), nil
		}
		return r.forward(event)
	case saga.StatusRollbackPending, saga.StatusFail:
		return r.compensate(event), nil
	default:
		return Decision{}, fmt.Errorf("cannot route status %s", event.Status)
	}
}

func (r *Router) forward(event *saga.Event) (Decision, error) {
	if event.Source == saga.SourceOrchestrator {
		return Decision{Topic: r.topo.First().SuccessTopic}, nil
	}
	if !r.topo.Contains(event.Source) {
		return Decision{}, fmt.Errorf("source %s is not part of the saga topology", event.Source)
	}
	next, ok := r.topo.Next(event.Source)
	if !ok {
		return Decision{Topic: saga.TopicFinishSuccess, Terminal: true}, nil
	}
	return Decision{Topic: next.SuccessTopic}, nil
}

// compensate picks the next participant to unwind: the last SUCCESS entry
// in the history whose source has no compensation outcome yet. History is
// the only state consulted, so a restarted orchestrator instance reaches
// the same verdict.
func (r *Router) compensate(event *saga.Event) Decision {
	succeeded := event.SucceededSources()
	for i := len(succeeded) - 1; i >= 0; i-- {
		source := succeeded[i]
		if event.Compensated(source) {
			continue
		}
		if step, ok := r.topo.StepFor(source); ok {
			return Decision{Topic: step.FailTopic, Compensation: true}
		}
	}
	return Decision{Topic: saga.TopicFinishFail, Terminal: true}
}

func (r *Router) expired(event *saga.Event) bool {
	if r.deadline <= 0 || event.CreatedAt.IsZero() {
		return false
	}
	return r.now().Sub(event.CreatedAt) > r.deadline
}
