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
	"errors"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/orchestrated-saga/sagaflow/pkg/logger"
	"github.com/orchestrated-saga/sagaflow/pkg/messaging"
)

// Consumer is a long-running loop over one topic within a consumer group.
// Offsets are committed only after the handler returns, so a crash mid
// handling results in redelivery, never in a lost message.
type Consumer struct {
	reader *kafka.Reader
	topic  string
}

// NewConsumer creates a consumer for one topic.
func NewConsumer(cfg *Config, topic string) (*Consumer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10 * 1024 * 1024,
		MaxWait:     cfg.MaxWait,
		StartOffset: kafka.FirstOffset,
		Dialer: &kafka.Dialer{
			Timeout:   cfg.DialTimeout,
			DualStack: true,
		},
	})
	return &Consumer{reader: reader, topic: topic}, nil
}

// Run implements messaging.Consumer. Handler errors are logged and the
// message is committed anyway: the saga layer converts every failure into
// an envelope transition, so the only errors reaching this point are
// unroutable messages that redelivery cannot fix.
func (c *Consumer) Run(ctx context.Context, handler messaging.Handler) error {
	log := logger.GetLogger()
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		handleErr := handler(ctx, messaging.Message{
			Topic:     c.topic,
			Key:       msg.Key,
			Value:     msg.Value,
			Timestamp: msg.Time,
		})
		if handleErr != nil {
			log.Error("message handling failed",
				zap.String("topic", c.topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(handleErr))
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

// Close implements messaging.Consumer.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
