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

package payment

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/orchestrated-saga/sagaflow/internal/service"
	"github.com/orchestrated-saga/sagaflow/pkg/config"
	"github.com/orchestrated-saga/sagaflow/pkg/messaging/kafka"
	"github.com/orchestrated-saga/sagaflow/pkg/saga"
	"github.com/orchestrated-saga/sagaflow/pkg/saga/participant"
)

// Service is the payment participant.
type Service struct {
	runner   *service.Runner
	producer *kafka.Producer
}

// newRepository picks the account store. Redis keeps balances and ledger
// entries when an address is configured, otherwise MySQL does. openDB is
// only invoked on the MySQL path so a redis deployment never dials the
// database.
func newRepository(cfg *config.Config, openDB func() *gorm.DB) (participant.Repository, error) {
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return participant.NewRedisRepository(client, "payment")
	}
	repo, err := participant.NewGormRepository(openDB(), "accounts", "order_payments")
	if err != nil {
		return nil, err
	}
	if err := repo.Migrate(); err != nil {
		return nil, err
	}
	return repo, nil
}

// NewService wires the payment participant.
func NewService(cfg *config.Config, openDB func() *gorm.DB) (*Service, error) {
	repo, err := newRepository(cfg, openDB)
	if err != nil {
		return nil, err
	}

	kcfg := &kafka.Config{
		Brokers: cfg.Kafka.Brokers,
		GroupID: cfg.Kafka.GroupID + "-payment",
	}
	producer, err := kafka.NewProducer(kcfg)
	if err != nil {
		return nil, err
	}

	engine, err := participant.NewEngine(participant.EngineConfig{
		Source:     saga.SourcePayment,
		Name:       "payment",
		Repository: repo,
		Planner:    participant.PlannerFunc(Planner),
		Producer:   producer,
	})
	if err != nil {
		producer.Close()
		return nil, err
	}

	applyConsumer, err := kafka.NewConsumer(kcfg, saga.TopicPaymentSuccess.String())
	if err != nil {
		producer.Close()
		return nil, err
	}
	rollbackConsumer, err := kafka.NewConsumer(kcfg, saga.TopicPaymentFail.String())
	if err != nil {
		applyConsumer.Close()
		producer.Close()
		return nil, err
	}

	runner := service.NewRunner()
	runner.Add("payment-apply", applyConsumer, engine.ApplyHandler())
	runner.Add("payment-rollback", rollbackConsumer, engine.RollbackHandler())

	return &Service{runner: runner, producer: producer}, nil
}

// Run blocks consuming until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	return s.runner.Run(ctx)
}

// Close releases broker connections.
func (s *Service) Close() error {
	err := s.runner.Close()
	if perr := s.producer.Close(); perr != nil && err == nil {
		err = perr
	}
	return err
}
