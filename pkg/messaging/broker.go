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

// Package messaging defines the broker adapter boundary: publish to named
// topics and consume them through a per-message handler. The broker is
// assumed to deliver at least once and to preserve ordering per message
// key; everything stronger (idempotency, compensation) is built above this
// package.
package messaging

import (
	"context"
	"time"
)

// Message is one unit of broker delivery.
type Message struct {
	// Topic is the channel the message was published to.
	Topic string

	// Key is the partition key. Saga envelopes are keyed by order id so a
	// single saga is always processed in publish order.
	Key []byte

	// Value is the serialized payload.
	Value []byte

	// Timestamp is the broker-assigned or publish-time timestamp.
	Timestamp time.Time
}

// Handler processes one delivered message. A returned error is logged by
// the consumer and the message is still committed: failures that matter to
// a saga are expressed as envelope transitions, not handler errors.
type Handler func(ctx context.Context, msg Message) error

// Producer publishes messages to named topics, fire-and-forget from the
// caller's point of view once Publish returns.
type Producer interface {
	// Publish sends value to topic using key for partition ordering.
	Publish(ctx context.Context, topic string, key, value []byte) error

	// Close releases the producer's connections.
	Close() error
}

// Consumer is a long-running loop over one topic.
type Consumer interface {
	// Run consumes messages and invokes handler for each until ctx is
	// cancelled. Messages for different keys may be handled concurrently by
	// separate consumer instances, but a single consumer handles its
	// messages strictly in order.
	Run(ctx context.Context, handler Handler) error

	// Close releases the consumer's connections.
	Close() error
}
