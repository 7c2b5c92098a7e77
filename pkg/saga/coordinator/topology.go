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

// Package coordinator implements the saga orchestrator: a deterministic
// router from (topology position, status, history) to the next topic. The
// orchestrator holds no session state beyond what travels in the envelope,
// so any instance can route any envelope.
package coordinator

import (
	"fmt"

	"github.com/orchestrated-saga/sagaflow/pkg/saga"
)

// Step is one saga participant in execution order, with its forward and
// compensation channels.
type Step struct {
	Source       saga.Source
	SuccessTopic saga.Topic
	FailTopic    saga.Topic
}

// Topology is the fixed ordered list of saga steps. Routing is a total
// function over it: every (status, source) combination maps to exactly one
// topic.
type Topology struct {
	steps []Step
	index map[saga.Source]int
}

// NewTopology builds and validates a topology.
func NewTopology(steps ...Step) (*Topology, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("topology requires at least one step")
	}
	index := make(map[saga.Source]int, len(steps))
	for i, step := range steps {
		if !step.Source.IsValid() || step.Source == saga.SourceOrchestrator {
			return nil, fmt.Errorf("topology step %d requires a participant source", i)
		}
		if step.SuccessTopic == "" || step.FailTopic == "" {
			return nil, fmt.Errorf("topology step %s requires success and fail topics", step.Source)
		}
		if _, dup := index[step.Source]; dup {
			return nil, fmt.Errorf("topology step %s appears twice", step.Source)
		}
		index[step.Source] = i
	}
	return &Topology{steps: steps, index: index}, nil
}

// DefaultTopology is the order saga: product validation, then inventory,
// then payment.
func DefaultTopology() *Topology {
	topo, err := NewTopology(
		Step{Source: saga.SourceProductValidation, SuccessTopic: saga.TopicProductValidationSuccess, FailTopic: saga.TopicProductValidationFail},
		Step{Source: saga.SourceInventory, SuccessTopic: saga.TopicInventorySuccess, FailTopic: saga.TopicInventoryFail},
		Step{Source: saga.SourcePayment, SuccessTopic: saga.TopicPaymentSuccess, FailTopic: saga.TopicPaymentFail},
	)
	if err != nil {
		panic(err)
	}
	return topo
}

// First returns the entry step of the saga.
func (t *Topology) First() Step {
	return t.steps[0]
}

// Next returns the step after the given participant, or false if it is the
// last step.
func (t *Topology) Next(source saga.Source) (Step, bool) {
	i, ok := t.index[source]
	if !ok || i+1 >= len(t.steps) {
		return Step{}, false
	}
	return t.steps[i+1], true
}

// StepFor returns the step owned by the given participant.
func (t *Topology) StepFor(source saga.Source) (Step, bool) {
	i, ok := t.index[source]
	if !ok {
		return Step{}, false
	}
	return t.steps[i], true
}

// Contains reports whether the participant is part of this topology.
func (t *Topology) Contains(source saga.Source) bool {
	_, ok := t.index[source]
	return ok
}
