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
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/orchestrated-saga/sagaflow/internal/service"
	"github.com/orchestrated-saga/sagaflow/pkg/config"
	"github.com/orchestrated-saga/sagaflow/pkg/logger"
	"github.com/orchestrated-saga/sagaflow/pkg/messaging/kafka"
	"github.com/orchestrated-saga/sagaflow/pkg/saga"
)

// Server is the order service: the HTTP API plus the consumer recording
// terminal saga outcomes.
type Server struct {
	runner   *service.Runner
	producer *kafka.Producer
	httpSrv  *http.Server
}

// NewServer wires the order service against its database and the broker.
func NewServer(cfg *config.Config, db *gorm.DB) (*Server, error) {
	if err := db.AutoMigrate(&SagaLog{}); err != nil {
		return nil, err
	}

	kcfg := &kafka.Config{
		Brokers: cfg.Kafka.Brokers,
		GroupID: cfg.Kafka.GroupID + "-order",
	}
	producer, err := kafka.NewProducer(kcfg)
	if err != nil {
		return nil, err
	}

	svc, err := NewOrderService(NewLogRepository(db), producer)
	if err != nil {
		producer.Close()
		return nil, err
	}

	endingConsumer, err := kafka.NewConsumer(kcfg, saga.TopicNotifyEnding.String())
	if err != nil {
		producer.Close()
		return nil, err
	}

	runner := service.NewRunner()
	runner.Add("notify-ending", endingConsumer, svc.NotifyEndingHandler())

	return &Server{
		runner:   runner,
		producer: producer,
		httpSrv: &http.Server{
			Addr:    ":" + cfg.Server.Port,
			Handler: NewHTTPHandler(svc).NewRouter(),
		},
	}, nil
}

// Run starts the HTTP listener and the consumer loop, returning when the
// context is canceled or either fails.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.GetLogger().Error("http listener failed", zap.Error(err))
		}
	}()
	return s.runner.Run(ctx)
}

// Close shuts the HTTP listener and broker connections down.
func (s *Server) Close() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.httpSrv.Shutdown(shutdownCtx)
	if rerr := s.runner.Close(); rerr != nil && err == nil {
		err = rerr
	}
	if perr := s.producer.Close(); perr != nil && err == nil {
		err = perr
	}
	return err
}
