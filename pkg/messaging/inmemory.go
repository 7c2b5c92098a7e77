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

package messaging

import (
	"context"
	"sync"
	"time"
)

// InMemoryBroker is a process-local broker for tests and examples. It
// preserves publish order per topic and delivers each message to every
// registered handler synchronously, which gives the same per-key ordering
// guarantee the saga expects from a real broker.
type InMemoryBroker struct {
	mu       sync.Mutex
	handlers map[string][]Handler
	log      map[string][]Message
	draining bool
	queue    []Message
}

// NewInMemoryBroker creates an empty in-memory broker.
func NewInMemoryBroker() *InMemoryBroker {
	return &InMemoryBroker{
		handlers: make(map[string][]Handler),
		log:      make(map[string][]Message),
	}
}

// Subscribe registers a handler for a topic. Handlers run synchronously in
// registration order when a message arrives on their topic.
func (b *InMemoryBroker) Subscribe(topic string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Publish implements Producer. Delivery is breadth-first: messages
// published while a handler runs are queued and dispatched after it
// returns, so a chain of publishes never recurses.
func (b *InMemoryBroker) Publish(ctx context.Context, topic string, key, value []byte) error {
	msg := Message{Topic: topic, Key: key, Value: value, Timestamp: time.Now().UTC()}

	b.mu.Lock()
	b.log[topic] = append(b.log[topic], msg)
	b.queue = append(b.queue, msg)
	if b.draining {
		b.mu.Unlock()
		return nil
	}
	b.draining = true
	b.mu.Unlock()

	for {
		b.mu.Lock()
		if len(b.queue) == 0 {
			b.draining = false
			b.mu.Unlock()
			return nil
		}
		next := b.queue[0]
		b.queue = b.queue[1:]
		handlers := append([]Handler(nil), b.handlers[next.Topic]...)
		b.mu.Unlock()

		for _, h := range handlers {
			// Handler errors are swallowed here the way a broker swallows
			// them: the message stays in the log for inspection.
			_ = h(ctx, next)
		}
	}
}

// Close implements Producer.
func (b *InMemoryBroker) Close() error {
	return nil
}

// Published returns a copy of everything published to a topic, in order.
func (b *InMemoryBroker) Published(topic string) []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Message(nil), b.log[topic]...)
}
