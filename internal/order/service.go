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

package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orchestrated-saga/sagaflow/pkg/logger"
	"github.com/orchestrated-saga/sagaflow/pkg/messaging"
	"github.com/orchestrated-saga/sagaflow/pkg/saga"
)

// OrderService creates orders and opens their sagas.
type OrderService struct {
	repo       LogRepository
	producer   messaging.Producer
	serializer saga.EventSerializer
}

// NewOrderService creates the order service.
func NewOrderService(repo LogRepository, producer messaging.Producer) (*OrderService, error) {
	if repo == nil {
		return nil, fmt.Errorf("order service requires a log repository")
	}
	if producer == nil {
		return nil, fmt.Errorf("order service requires a producer")
	}
	return &OrderService{
		repo:       repo,
		producer:   producer,
		serializer: saga.NewJSONEventSerializer(),
	}, nil
}

// CreateOrder builds the order from the request, opens a saga for it, and
// publishes the envelope to the entry topic.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	event, err := saga.NewEvent(uuid.NewString())
	if err != nil {
		return nil, err
	}

	order := saga.Order{
		ID:            event.OrderID,
		ClientID:      req.ClientID,
		CreatedAt:     time.Now().UTC(),
		TransactionID: event.TransactionID,
	}
	for _, item := range req.Products {
		order.Products = append(order.Products, saga.OrderProduct{
			Product: saga.Product{
				Code:      item.Product.Code,
				Unit:      item.Product.Unit,
				UnitPrice: item.Product.UnitPrice,
			},
			Quantity: item.Quantity,
		})
		order.TotalAmount += item.Product.UnitPrice * item.Quantity
		order.TotalItems += item.Quantity
	}
	event.Payload = order

	data, err := s.serializer.Serialize(event)
	if err != nil {
		return nil, err
	}
	if err := s.producer.Publish(ctx, saga.TopicStartSaga.String(), []byte(event.OrderID), data); err != nil {
		return nil, err
	}

	logger.GetLogger().Info("order accepted",
		zap.String("orderId", event.OrderID),
		zap.String("transactionId", event.TransactionID),
		zap.Int("totalAmount", order.TotalAmount),
		zap.Int("totalItems", order.TotalItems))

	return &CreateOrderResponse{
		OrderID:       event.OrderID,
		TransactionID: event.TransactionID,
		TotalAmount:   order.TotalAmount,
		TotalItems:    order.TotalItems,
	}, nil
}

// NotifyEndingHandler returns the broker handler for the ending
// notification topic: it records each terminal envelope in saga_logs.
func (s *OrderService) NotifyEndingHandler() messaging.Handler {
	return func(ctx context.Context, msg messaging.Message) error {
		event, err := s.serializer.Deserialize(msg.Value)
		if err != nil {
			logger.GetLogger().Error("discarding unparseable ending notification", zap.Error(err))
			return nil
		}
		log := &SagaLog{
			OrderID:       event.OrderID,
			TransactionID: event.TransactionID,
			Status:        event.Status.String(),
			Payload:       string(msg.Value),
		}
		if err := s.repo.SaveLog(log); err != nil {
			logger.GetLogger().Error("failed to record saga outcome",
				zap.String("orderId", event.OrderID),
				zap.Error(err))
			return err
		}
		logger.GetLogger().Info("saga outcome recorded",
			zap.String("orderId", event.OrderID),
			zap.String("status", event.Status.String()))
		return nil
	}
}
