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

package productvalidation

import (
	"context"

	"gorm.io/gorm"

	"github.com/orchestrated-saga/sagaflow/internal/service"
	"github.com/orchestrated-saga/sagaflow/pkg/config"
	"github.com/orchestrated-saga/sagaflow/pkg/messaging/kafka"
	"github.com/orchestrated-saga/sagaflow/pkg/saga"
	"github.com/orchestrated-saga/sagaflow/pkg/saga/participant"
)

// Service is the product validation participant.
type Service struct {
	runner   *service.Runner
	producer *kafka.Producer
}

// NewService wires the product validation participant.
func NewService(cfg *config.Config, db *gorm.DB) (*Service, error) {
	repo, err := participant.NewGormRepository(db, "products", "order_validations")
	if err != nil {
		return nil, err
	}
	if err := repo.Migrate(); err != nil {
		return nil, err
	}

	kcfg := &kafka.Config{
		Brokers: cfg.Kafka.Brokers,
		GroupID: cfg.Kafka.GroupID + "-product-validation",
	}
	producer, err := kafka.NewProducer(kcfg)
	if err != nil {
		return nil, err
	}

	engine, err := participant.NewEngine(participant.EngineConfig{
		Source:     saga.SourceProductValidation,
		Name:       "product validation",
		Repository: repo,
		Planner:    participant.PlannerFunc(Planner),
		Producer:   producer,
	})
	if err != nil {
		producer.Close()
		return nil, err
	}

	applyConsumer, err := kafka.NewConsumer(kcfg, saga.TopicProductValidationSuccess.String())
	if err != nil {
		producer.Close()
		return nil, err
	}
	rollbackConsumer, err := kafka.NewConsumer(kcfg, saga.TopicProductValidationFail.String())
	if err != nil {
		applyConsumer.Close()
		producer.Close()
		return nil, err
	}

	runner := service.NewRunner()
	runner.Add("product-validation-apply", applyConsumer, engine.ApplyHandler())
	runner.Add("product-validation-rollback", rollbackConsumer, engine.RollbackHandler())

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
