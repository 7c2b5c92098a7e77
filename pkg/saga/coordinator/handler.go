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
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/orchestrated-saga/sagaflow/pkg/logger"
	"github.com/orchestrated-saga/sagaflow/pkg/messaging"
	"github.com/orchestrated-saga/sagaflow/pkg/saga"
)

// HandlerConfig assembles the orchestrator's message handler.
type HandlerConfig struct {
	// Router decides the next topic for every envelope.
	Router *Router

	// Producer republishes envelopes.
	Producer messaging.Producer

	// Serializer encodes and decodes envelopes. Defaults to JSON.
	Serializer saga.EventSerializer

	// Metrics counts lifecycle events. Optional.
	Metrics *Metrics

	// NotifyEnding, when true, publishes a copy of every terminal envelope
	// to the ending notification topic for the order service.
	NotifyEnding bool
}

// Handler consumes saga entry and participant outcome events, routes them,
// and republishes. It is stateless: everything it needs travels in the
// envelope.
type Handler struct {
	router       *Router
	producer     messaging.Producer
	serializer   saga.EventSerializer
	metrics      *Metrics
	notifyEnding bool
}

// NewHandler creates the orchestrator handler.
func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if cfg.Router == nil {
		return nil, fmt.Errorf("orchestrator handler requires a router")
	}
	if cfg.Producer == nil {
		return nil, fmt.Errorf("orchestrator handler requires a producer")
	}
	if cfg.Serializer == nil {
		cfg.Serializer = saga.NewJSONEventSerializer()
	}
	return &Handler{
		router:       cfg.Router,
		producer:     cfg.Producer,
		serializer:   cfg.Serializer,
		metrics:      cfg.Metrics,
		notifyEnding: cfg.NotifyEnding,
	}, nil
}

// HandleMessage returns the broker handler for the orchestrator's inbound
// topics (saga entry and participant outcomes).
func (h *Handler) HandleMessage() messaging.Handler {
	return func(ctx context.Context, msg messaging.Message) error {
		event, err := h.serializer.Deserialize(msg.Value)
		if err != nil {
			// Unroutable by definition: the identity is gone. Log and drop.
			logger.GetLogger().Error("discarding unparseable message",
				zap.String("topic", msg.Topic),
				zap.Error(err))
			if h.metrics != nil {
				h.metrics.DeadLetter()
			}
			return nil
		}
		if msg.Topic == saga.TopicStartSaga.String() {
			// A fresh envelope enters with the orchestrator as its source.
			event.Source = saga.SourceOrchestrator
			event.Status = saga.StatusSuccess
			if h.metrics != nil {
				h.metrics.SagaStarted()
			}
			logger.GetLogger().Info("saga started",
				zap.String("orderId", event.OrderID),
				zap.String("transactionId", event.TransactionID))
		}
		h.process(ctx, event)
		return nil
	}
}

func (h *Handler) process(ctx context.Context, event *saga.Event) {
	decision, err := h.router.Route(event)
	if err != nil {
		logger.GetLogger().Error("cannot route envelope",
			zap.String("orderId", event.OrderID),
			zap.String("source", event.Source.String()),
			zap.String("status", event.Status.String()),
			zap.Error(err))
		return
	}

	if decision.Terminal && decision.Topic == saga.TopicFinishFail {
		// The envelope reaches its failed end of life regardless of how
		// the last compensation went.
		event.Status = saga.StatusFail
	}

	h.publish(ctx, decision.Topic, event)

	switch {
	case decision.Terminal:
		if h.notifyEnding {
			h.publish(ctx, saga.TopicNotifyEnding, event)
		}
		if h.metrics != nil {
			if decision.Topic == saga.TopicFinishSuccess {
				h.metrics.SagaCompleted()
			} else {
				h.metrics.SagaFailed()
			}
		}
		logger.GetLogger().Info("saga finished",
			zap.String("orderId", event.OrderID),
			zap.String("transactionId", event.TransactionID),
			zap.String("status", event.Status.String()),
			zap.Int("historyEntries", len(event.EventHistory)))
	case decision.Compensation:
		if h.metrics != nil {
			h.metrics.CompensationDispatched()
		}
		logger.GetLogger().Info("compensation dispatched",
			zap.String("orderId", event.OrderID),
			zap.String("topic", decision.Topic.String()))
	}
}

func (h *Handler) publish(ctx context.Context, topic saga.Topic, event *saga.Event) {
	data, err := h.serializer.Serialize(event)
	if err != nil {
		logger.GetLogger().Error("failed to serialize envelope",
			zap.String("orderId", event.OrderID),
			zap.Error(err))
		data = []byte{}
	}
	if err := h.producer.Publish(ctx, topic.String(), []byte(event.OrderID), data); err != nil {
		logger.GetLogger().Error("failed to republish envelope",
			zap.String("orderId", event.OrderID),
			zap.String("topic", topic.String()),
			zap.Error(err))
	}
}
