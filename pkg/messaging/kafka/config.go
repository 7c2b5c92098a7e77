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

// Package kafka implements the messaging broker adapter on Apache Kafka
// using segmentio/kafka-go. Envelopes are keyed by order id and writers use
// hash partitioning, so a single saga's messages always land on the same
// partition and are consumed in publish order.
package kafka

import (
	"errors"
	"time"
)

// ErrNoBrokers indicates the adapter was configured without endpoints.
var ErrNoBrokers = errors.New("kafka: at least one broker endpoint is required")

// Config holds the connection settings shared by producers and consumers.
type Config struct {
	// Brokers are the bootstrap endpoints.
	Brokers []string

	// GroupID is the consumer group; each service uses its own group so
	// every service sees every message on its topics.
	GroupID string

	// DialTimeout bounds the initial connection attempt.
	DialTimeout time.Duration

	// MaxWait bounds how long a fetch blocks waiting for new data.
	MaxWait time.Duration
}

// Validate checks the configuration and fills defaults.
func (c *Config) Validate() error {
	if len(c.Brokers) == 0 {
		return ErrNoBrokers
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 10 * time.Second
	}
	if c.MaxWait <= 0 {
		c.MaxWait = 500 * time.Millisecond
	}
	return nil
}
