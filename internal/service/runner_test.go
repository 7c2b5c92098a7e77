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

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchestrated-saga/sagaflow/pkg/messaging"
)

// blockingConsumer runs until its context is canceled, or fails
// immediately when err is set.
type blockingConsumer struct {
	err    error
	closed bool
}

func (c *blockingConsumer) Run(ctx context.Context, handler messaging.Handler) error {
	if c.err != nil {
		return c.err
	}
	<-ctx.Done()
	return nil
}

func (c *blockingConsumer) Close() error {
	c.closed = true
	return nil
}

func TestRunner_StopsOnContextCancel(t *testing.T) {
	runner := NewRunner()
	runner.Add("a", &blockingConsumer{}, nil)
	runner.Add("b", &blockingConsumer{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop after cancel")
	}
}

func TestRunner_FirstFailureStopsTheRest(t *testing.T) {
	runner := NewRunner()
	failing := &blockingConsumer{err: errors.New("broker gone")}
	runner.Add("healthy", &blockingConsumer{}, nil)
	runner.Add("failing", failing, nil)

	done := make(chan error, 1)
	go func() { done <- runner.Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broker gone")
	case <-time.After(time.Second):
		t.Fatal("runner did not stop after consumer failure")
	}
}

func TestRunner_CloseClosesEveryConsumer(t *testing.T) {
	runner := NewRunner()
	a := &blockingConsumer{}
	b := &blockingConsumer{}
	runner.Add("a", a, nil)
	runner.Add("b", b, nil)

	require.NoError(t, runner.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}
