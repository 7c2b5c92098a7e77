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

package participant

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/orchestrated-saga/sagaflow/pkg/logger"
	"github.com/orchestrated-saga/sagaflow/pkg/messaging"
	"github.com/orchestrated-saga/sagaflow/pkg/saga"
)

// Demand is one resource requirement derived from an order payload: consume
// Quantity units of Resource. A zero quantity demand is an existence check
// that still writes a ledger entry (before == after) so the attempt stays
// idempotent and auditable.
type Demand struct {
	Resource string
	Quantity int
}

// Planner maps an order payload to the demands this participant must
// satisfy. Inventory plans one demand per line item; payment plans a single
// demand of the order total against the client's account.
type Planner interface {
	Plan(order saga.Order) ([]Demand, error)
}

// PlannerFunc adapts a function to the Planner interface.
type PlannerFunc func(order saga.Order) ([]Demand, error)

// Plan implements Planner.
func (f PlannerFunc) Plan(order saga.Order) ([]Demand, error) {
	return f(order)
}

// EngineConfig assembles a participant engine.
type EngineConfig struct {
	// Source identifies this participant on envelopes and history entries.
	Source saga.Source

	// Name is the human label used in history messages, e.g. "inventory".
	Name string

	// Repository is the participant's resource store and ledger.
	Repository Repository

	// Planner derives resource demands from the order payload.
	Planner Planner

	// Producer publishes outcome envelopes.
	Producer messaging.Producer

	// Serializer encodes and decodes envelopes. Defaults to JSON.
	Serializer saga.EventSerializer

	// OutcomeTopic is where outcomes are published. Defaults to the
	// orchestrator topic.
	OutcomeTopic saga.Topic

	// DeadLetterTopic, when set, receives the raw bytes of unparseable
	// inbound messages. No envelope is ever produced for those.
	DeadLetterTopic saga.Topic
}

// Validate checks the configuration and fills defaults.
func (c *EngineConfig) Validate() error {
	if !c.Source.IsValid() || c.Source == saga.SourceOrchestrator {
		return fmt.Errorf("participant engine requires a participant source")
	}
	if c.Name == "" {
		return fmt.Errorf("participant engine requires a name")
	}
	if c.Repository == nil {
		return fmt.Errorf("participant engine requires a repository")
	}
	if c.Planner == nil {
		return fmt.Errorf("participant engine requires a planner")
	}
	if c.Producer == nil {
		return fmt.Errorf("participant engine requires a producer")
	}
	if c.Serializer == nil {
		c.Serializer = saga.NewJSONEventSerializer()
	}
	if c.OutcomeTopic == "" {
		c.OutcomeTopic = saga.TopicOrchestrator
	}
	return nil
}

// Engine is the generic participant: it applies a local effect for forward
// envelopes and restores prior state from the ledger for rollback signals.
// Every inbound envelope yields exactly one outbound publish; an envelope
// is never dropped silently.
type Engine struct {
	source          saga.Source
	name            string
	repo            Repository
	planner         Planner
	producer        messaging.Producer
	serializer      saga.EventSerializer
	outcomeTopic    saga.Topic
	deadLetterTopic saga.Topic
}

// NewEngine creates a participant engine from the configuration.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		source:          cfg.Source,
		name:            cfg.Name,
		repo:            cfg.Repository,
		planner:         cfg.Planner,
		producer:        cfg.Producer,
		serializer:      cfg.Serializer,
		outcomeTopic:    cfg.OutcomeTopic,
		deadLetterTopic: cfg.DeadLetterTopic,
	}, nil
}

// Apply runs the forward path for one envelope: idempotency check, then
// resolve, validate, and mutate each planned demand with its ledger entry,
// then publish the outcome. Any failure converts into a ROLLBACK_PENDING
// transition; it never propagates to the broker layer.
func (e *Engine) Apply(ctx context.Context, event *saga.Event) {
	if err := e.apply(ctx, event); err != nil {
		logger.GetLogger().Error("failed to apply "+e.name,
			zap.String("orderId", event.OrderID),
			zap.String("transactionId", event.TransactionID),
			zap.Error(err))
		event.RecordStep(e.source, saga.StatusRollbackPending,
			fmt.Sprintf("failed to update %s: %s", e.name, err.Error()))
	} else {
		event.RecordStep(e.source, saga.StatusSuccess,
			fmt.Sprintf("%s updated successfully", e.name))
	}
	e.publish(ctx, event)
}

func (e *Engine) apply(ctx context.Context, event *saga.Event) error {
	exists, err := e.repo.ExistsEntry(ctx, event.OrderID, event.TransactionID)
	if err != nil {
		return saga.WrapError(err, saga.ErrCodeStorageError, "idempotency check failed")
	}
	if exists {
		// Fail fast before touching any resource: a redelivered attempt
		// must not be re-applied.
		return saga.NewSagaError(saga.ErrCodeDuplicateTransaction,
			"there is another transaction for this order")
	}

	demands, err := e.planner.Plan(event.Payload)
	if err != nil {
		return saga.WrapError(err, saga.ErrCodeValidationError, "order payload rejected")
	}

	for _, demand := range demands {
		if err := e.applyDemand(ctx, event, demand); err != nil {
			// Demands already applied in this loop stay applied; the
			// orchestrator unwinds previously succeeded participants and
			// this partial window is reconciled out of band.
			return err
		}
	}
	return nil
}

func (e *Engine) applyDemand(ctx context.Context, event *saga.Event, demand Demand) error {
	res, err := e.repo.FindResource(ctx, demand.Resource)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return saga.NewSagaError(saga.ErrCodeResourceNotFound,
				fmt.Sprintf("%s not found: %s", e.name, demand.Resource))
		}
		return saga.WrapError(err, saga.ErrCodeStorageError, "resource lookup failed")
	}

	if demand.Quantity > res.Available {
		return saga.NewSagaError(saga.ErrCodeInsufficientResource,
			fmt.Sprintf("%s %s has %d available, %d requested",
				e.name, demand.Resource, res.Available, demand.Quantity))
	}

	before := res.Available
	res.Available -= demand.Quantity
	entry, err := NewEntry(event.OrderID, event.TransactionID, demand.Resource,
		before, -demand.Quantity, res.Available)
	if err != nil {
		return saga.WrapError(err, saga.ErrCodeValidationError, "invalid ledger entry")
	}
	if err := e.repo.ApplyMutation(ctx, res, entry); err != nil {
		return saga.WrapError(err, saga.ErrCodeStorageError, "mutation failed")
	}
	return nil
}

// Rollback runs the compensation path: restore every resource touched by
// this attempt to the value recorded in its ledger entry, mark the envelope
// FAIL, and publish. A failed restore is recorded in history but never
// blocks the outbound publish, so the orchestrator does not stall.
func (e *Engine) Rollback(ctx context.Context, event *saga.Event) {
	if err := e.restore(ctx, event); err != nil {
		logger.GetLogger().Error("rollback not executed for "+e.name,
			zap.String("orderId", event.OrderID),
			zap.String("transactionId", event.TransactionID),
			zap.Error(err))
		event.RecordStep(e.source, saga.StatusFail,
			fmt.Sprintf("rollback not executed for %s: %s", e.name, err.Error()))
	} else {
		event.RecordStep(e.source, saga.StatusFail,
			fmt.Sprintf("rollback executed for %s", e.name))
	}
	e.publish(ctx, event)
}

func (e *Engine) restore(ctx context.Context, event *saga.Event) error {
	entries, err := e.repo.FindEntries(ctx, event.OrderID, event.TransactionID)
	if err != nil {
		return saga.WrapError(err, saga.ErrCodeCompensationFailed, "ledger lookup failed")
	}
	for _, entry := range entries {
		res, err := e.repo.FindResource(ctx, entry.Resource)
		if err != nil {
			return saga.WrapError(err, saga.ErrCodeCompensationFailed,
				fmt.Sprintf("cannot resolve %s", entry.Resource))
		}
		// Restore the exact recorded snapshot, not current-minus-delta.
		res.Available = entry.Before
		if err := e.repo.SaveResource(ctx, res); err != nil {
			return saga.WrapError(err, saga.ErrCodeCompensationFailed,
				fmt.Sprintf("cannot restore %s", entry.Resource))
		}
		logger.GetLogger().Info("restored resource to prior value",
			zap.String("participant", e.name),
			zap.String("resource", entry.Resource),
			zap.Int("from", entry.After),
			zap.Int("to", entry.Before))
	}
	return nil
}

func (e *Engine) publish(ctx context.Context, event *saga.Event) {
	data, err := e.serializer.Serialize(event)
	if err != nil {
		// Encode failure degrades to the empty sentinel; the publish still
		// happens so the saga keeps moving.
		logger.GetLogger().Error("failed to serialize outcome envelope",
			zap.String("orderId", event.OrderID),
			zap.Error(err))
		data = []byte{}
	}
	if err := e.producer.Publish(ctx, e.outcomeTopic.String(), []byte(event.OrderID), data); err != nil {
		logger.GetLogger().Error("failed to publish outcome envelope",
			zap.String("orderId", event.OrderID),
			zap.String("topic", e.outcomeTopic.String()),
			zap.Error(err))
	}
}

// ApplyHandler returns the broker handler for this participant's forward
// topic.
func (e *Engine) ApplyHandler() messaging.Handler {
	return e.handler(e.Apply)
}

// RollbackHandler returns the broker handler for this participant's
// compensation topic.
func (e *Engine) RollbackHandler() messaging.Handler {
	return e.handler(e.Rollback)
}

func (e *Engine) handler(process func(context.Context, *saga.Event)) messaging.Handler {
	return func(ctx context.Context, msg messaging.Message) error {
		event, err := e.serializer.Deserialize(msg.Value)
		if err != nil {
			// Unparseable input is the one true dead-letter case: the
			// identity is unrecoverable, so no envelope is produced.
			logger.GetLogger().Error("discarding unparseable message",
				zap.String("topic", msg.Topic),
				zap.Error(err))
			if e.deadLetterTopic != "" {
				if dlqErr := e.producer.Publish(ctx, e.deadLetterTopic.String(), msg.Key, msg.Value); dlqErr != nil {
					logger.GetLogger().Error("failed to publish to dead letter topic", zap.Error(dlqErr))
				}
			}
			return nil
		}
		process(ctx, event)
		return nil
	}
}
