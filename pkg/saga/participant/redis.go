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

package participant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisRepository is a Repository backed by Redis, for participants that
// keep their working state in a cache rather than a relational store. The
// resource write and ledger append share one MULTI/EXEC pipeline, which is
// the strongest local atomicity Redis offers.
type RedisRepository struct {
	client    redis.UniversalClient
	namespace string
}

// NewRedisRepository creates a repository using the given client. The
// namespace isolates participants sharing one Redis instance.
func NewRedisRepository(client redis.UniversalClient, namespace string) (*RedisRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("redis repository requires a client")
	}
	if namespace == "" {
		return nil, fmt.Errorf("redis repository requires a namespace")
	}
	return &RedisRepository{client: client, namespace: namespace}, nil
}

func (r *RedisRepository) resourceKey(code string) string {
	return fmt.Sprintf("sagaflow:%s:resource:%s", r.namespace, code)
}

func (r *RedisRepository) ledgerKey(orderID, transactionID string) string {
	return fmt.Sprintf("sagaflow:%s:ledger:%s:%s", r.namespace, orderID, transactionID)
}

// FindResource implements Repository.
func (r *RedisRepository) FindResource(ctx context.Context, code string) (Resource, error) {
	val, err := r.client.Get(ctx, r.resourceKey(code)).Result()
	if errors.Is(err, redis.Nil) {
		return Resource{}, ErrResourceNotFound
	}
	if err != nil {
		return Resource{}, fmt.Errorf("redis: get resource %s: %w", code, err)
	}
	available, err := strconv.Atoi(val)
	if err != nil {
		return Resource{}, fmt.Errorf("redis: corrupt resource value for %s: %w", code, err)
	}
	return Resource{Code: code, Available: available}, nil
}

// SaveResource implements Repository.
func (r *RedisRepository) SaveResource(ctx context.Context, res Resource) error {
	if err := r.client.Set(ctx, r.resourceKey(res.Code), res.Available, 0).Err(); err != nil {
		return fmt.Errorf("redis: save resource %s: %w", res.Code, err)
	}
	return nil
}

// ExistsEntry implements Repository.
func (r *RedisRepository) ExistsEntry(ctx context.Context, orderID, transactionID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.ledgerKey(orderID, transactionID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis: exists ledger %s/%s: %w", orderID, transactionID, err)
	}
	return n > 0, nil
}

// ApplyMutation implements Repository.
func (r *RedisRepository) ApplyMutation(ctx context.Context, res Resource, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("redis: marshal ledger entry: %w", err)
	}
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.resourceKey(res.Code), res.Available, 0)
	pipe.RPush(ctx, r.ledgerKey(entry.OrderID, entry.TransactionID), payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: apply mutation for %s: %w", res.Code, err)
	}
	return nil
}

// FindEntries implements Repository.
func (r *RedisRepository) FindEntries(ctx context.Context, orderID, transactionID string) ([]Entry, error) {
	raw, err := r.client.LRange(ctx, r.ledgerKey(orderID, transactionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: load ledger %s/%s: %w", orderID, transactionID, err)
	}
	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var entry Entry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("redis: corrupt ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
