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

package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/orchestrated-saga/sagaflow/pkg/logger"
)

// Producer publishes messages through a single shared kafka-go writer.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer creates a producer for the given brokers. The hash balancer
// keeps all messages for one key on one partition, which is what gives the
// saga its per-order ordering guarantee.
func NewProducer(cfg *Config) (*Producer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Producer{writer: writer}, nil
}

// Publish implements messaging.Producer.
func (p *Producer) Publish(ctx context.Context, topic string, key, value []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
		Time:  time.Now().UTC(),
	})
	if err != nil {
		logger.GetLogger().Error("failed to publish message",
			zap.String("topic", topic),
			zap.ByteString("key", key),
			zap.Error(err))
		return fmt.Errorf("kafka: publish to %s: %w", topic, err)
	}
	return nil
}

// Close implements messaging.Producer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
