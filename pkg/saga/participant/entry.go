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

// Package participant implements the generic saga participant engine and
// its ledger. The ledger records, per (order, transaction, resource), the
// value before and after each local mutation; its presence is the
// idempotency guard and its Before value is the only source of truth for
// compensation.
package participant

import (
	"fmt"
	"time"
)

// Entry is one ledger record. Compensation restores the resource to Before,
// never a recomputed delta, because the current value may already reflect
// unrelated concurrent activity.
type Entry struct {
	OrderID       string    `json:"orderId"`
	TransactionID string    `json:"transactionId"`
	Resource      string    `json:"resource"`
	Before        int       `json:"before"`
	Delta         int       `json:"delta"`
	After         int       `json:"after"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewEntry constructs a validated ledger entry. All identity fields are
// required and the arithmetic must be consistent.
func NewEntry(orderID, transactionID, resource string, before, delta, after int) (Entry, error) {
	if orderID == "" || transactionID == "" {
		return Entry{}, fmt.Errorf("ledger entry requires order and transaction ids")
	}
	if resource == "" {
		return Entry{}, fmt.Errorf("ledger entry requires a resource code")
	}
	if before+delta != after {
		return Entry{}, fmt.Errorf("ledger entry arithmetic mismatch: %d%+d != %d", before, delta, after)
	}
	return Entry{
		OrderID:       orderID,
		TransactionID: transactionID,
		Resource:      resource,
		Before:        before,
		Delta:         delta,
		After:         after,
		CreatedAt:     time.Now().UTC(),
	}, nil
}
