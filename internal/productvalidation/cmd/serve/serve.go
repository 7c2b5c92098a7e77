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

package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orchestrated-saga/sagaflow/internal/db"
	"github.com/orchestrated-saga/sagaflow/internal/productvalidation"
	"github.com/orchestrated-saga/sagaflow/pkg/config"
	"github.com/orchestrated-saga/sagaflow/pkg/logger"
)

// NewServeCmd creates the serve command for the product validation service.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the product validation service",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			logger.InitLogger("product-validation-service")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
	return cmd
}

func runServer() error {
	log := logger.GetLogger()
	log.Info("Starting product validation service...")

	svc, err := productvalidation.NewService(config.GetConfig(), db.GetDB())
	if err != nil {
		log.Error("Failed to create product validation service", zap.Error(err))
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := svc.Run(ctx); err != nil {
			serverErr <- err
		}
	}()

	select {
	case <-quit:
		log.Info("Shutdown signal received, stopping product validation service...")
		cancel()
		if err := svc.Close(); err != nil {
			log.Error("Error during shutdown", zap.Error(err))
			return err
		}
		log.Info("Product validation service shutdown complete")
	case err := <-serverErr:
		log.Error("Product validation service error", zap.Error(err))
		svc.Close()
		return err
	}

	return nil
}
