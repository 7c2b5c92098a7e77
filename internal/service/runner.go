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

// Package service runs a set of broker consumers as one unit with a shared
// lifecycle.
package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/orchestrated-saga/sagaflow/pkg/logger"
	"github.com/orchestrated-saga/sagaflow/pkg/messaging"
)

type consumerEntry struct {
	name     string
	consumer messaging.Consumer
	handler  messaging.Handler
}

// Runner owns a group of consumers. Run blocks until the context is
// canceled or any consumer loop fails; the first failure stops the rest.
type Runner struct {
	entries []consumerEntry
}

// NewRunner creates an empty runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Add registers a consumer with its handler. Not safe after Run started.
func (r *Runner) Add(name string, consumer messaging.Consumer, handler messaging.Handler) {
	r.entries = append(r.entries, consumerEntry{name: name, consumer: consumer, handler: handler})
}

// Run starts every consumer loop and blocks until all stop.
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := logger.GetLogger()
	errCh := make(chan error, len(r.entries))
	var wg sync.WaitGroup
	for _, e := range r.entries {
		wg.Add(1)
		go func(e consumerEntry) {
			defer wg.Done()
			log.Info("consumer loop started", zap.String("consumer", e.name))
			if err := e.consumer.Run(ctx, e.handler); err != nil {
				log.Error("consumer loop failed",
					zap.String("consumer", e.name),
					zap.Error(err))
				errCh <- err
				cancel()
				return
			}
			log.Info("consumer loop stopped", zap.String("consumer", e.name))
		}(e)
	}
	wg.Wait()

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

// Close closes every consumer. Call after Run returns.
func (r *Runner) Close() error {
	var first error
	for _, e := range r.entries {
		if err := e.consumer.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
