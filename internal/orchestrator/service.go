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

// Package orchestrator runs the saga coordinator: it consumes the entry
// topic and every participant outcome, routes each envelope through the
// topology, and republishes it until the saga reaches a terminal topic.
package orchestrator

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/orchestrated-saga/sagaflow/internal/service"
	"github.com/orchestrated-saga/sagaflow/pkg/config"
	"github.com/orchestrated-saga/sagaflow/pkg/logger"
	"github.com/orchestrated-saga/sagaflow/pkg/messaging/kafka"
	"github.com/orchestrated-saga/sagaflow/pkg/saga"
	"github.com/orchestrated-saga/sagaflow/pkg/saga/coordinator"
)

// Service is the orchestrator: two consumer loops plus a small HTTP
// listener for health and metrics.
type Service struct {
	runner   *service.Runner
	producer *kafka.Producer
	httpSrv  *http.Server
}

// NewService wires the orchestrator against the broker.
func NewService(cfg *config.Config) (*Service, error) {
	router, err := coordinator.NewRouter(coordinator.DefaultTopology(),
		coordinator.WithDeadline(cfg.Saga.Deadline))
	if err != nil {
		return nil, err
	}

	kcfg := &kafka.Config{
		Brokers: cfg.Kafka.Brokers,
		GroupID: cfg.Kafka.GroupID + "-orchestrator",
	}
	producer, err := kafka.NewProducer(kcfg)
	if err != nil {
		return nil, err
	}

	metrics := coordinator.NewMetrics(prometheus.DefaultRegisterer)
	handler, err := coordinator.NewHandler(coordinator.HandlerConfig{
		Router:       router,
		Producer:     producer,
		Metrics:      metrics,
		NotifyEnding: true,
	})
	if err != nil {
		producer.Close()
		return nil, err
	}

	startConsumer, err := kafka.NewConsumer(kcfg, saga.TopicStartSaga.String())
	if err != nil {
		producer.Close()
		return nil, err
	}
	outcomeConsumer, err := kafka.NewConsumer(kcfg, saga.TopicOrchestrator.String())
	if err != nil {
		startConsumer.Close()
		producer.Close()
		return nil, err
	}

	runner := service.NewRunner()
	runner.Add("saga-start", startConsumer, handler.HandleMessage())
	runner.Add("saga-outcomes", outcomeConsumer, handler.HandleMessage())

	return &Service{
		runner:   runner,
		producer: producer,
		httpSrv:  newHTTPServer(cfg.Server.Port),
	}, nil
}

func newHTTPServer(port string) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return &http.Server{
		Addr:    ":" + port,
		Handler: engine,
	}
}

// Run starts the HTTP listener and the consumer loops, returning when the
// context is canceled or a loop fails.
func (s *Service) Run(ctx context.Context) error {
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.GetLogger().Error("metrics listener failed", zap.Error(err))
		}
	}()
	return s.runner.Run(ctx)
}

// Close shuts the HTTP listener and broker connections down.
func (s *Service) Close() error {
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
