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
	"sync"
)

// MemoryRepository is an in-memory Repository for tests and examples. A
// single mutex covers both the resource map and the ledger, which makes
// ApplyMutation trivially atomic.
type MemoryRepository struct {
	mu        sync.RWMutex
	resources map[string]Resource
	entries   map[string][]Entry
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		resources: make(map[string]Resource),
		entries:   make(map[string][]Entry),
	}
}

// SeedResource installs a resource record, bypassing the engine. Test and
// bootstrap use only.
func (r *MemoryRepository) SeedResource(res Resource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resources[res.Code] = res
}

func attemptKey(orderID, transactionID string) string {
	return orderID + "|" + transactionID
}

// FindResource implements Repository.
func (r *MemoryRepository) FindResource(ctx context.Context, code string) (Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resources[code]
	if !ok {
		return Resource{}, ErrResourceNotFound
	}
	return res, nil
}

// SaveResource implements Repository.
func (r *MemoryRepository) SaveResource(ctx context.Context, res Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resources[res.Code] = res
	return nil
}

// ExistsEntry implements Repository.
func (r *MemoryRepository) ExistsEntry(ctx context.Context, orderID, transactionID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries[attemptKey(orderID, transactionID)]) > 0, nil
}

// ApplyMutation implements Repository.
func (r *MemoryRepository) ApplyMutation(ctx context.Context, res Resource, entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resources[res.Code] = res
	key := attemptKey(entry.OrderID, entry.TransactionID)
	r.entries[key] = append(r.entries[key], entry)
	return nil
}

// FindEntries implements Repository.
func (r *MemoryRepository) FindEntries(ctx context.Context, orderID, transactionID string) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Entry(nil), r.entries[attemptKey(orderID, transactionID)]...), nil
}
