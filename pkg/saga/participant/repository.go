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
	"errors"
)

// ErrResourceNotFound indicates a referenced resource code is unknown to
// this participant. Distinct from a storage fault.
var ErrResourceNotFound = errors.New("resource not found")

// Resource is the keyed quantity record a participant owns: a stock level,
// an account balance in cents, a catalog entry. It is mutated only through
// the engine's apply and compensate paths.
type Resource struct {
	Code      string
	Available int
}

// Repository is the participant's persistence boundary: the resource store
// and the ledger behind one interface so ApplyMutation can make the
// resource write and the ledger append a single local transaction.
type Repository interface {
	// FindResource resolves a resource by its code, returning
	// ErrResourceNotFound if absent.
	FindResource(ctx context.Context, code string) (Resource, error)

	// SaveResource persists a resource record. Used by compensation to
	// restore the recorded prior value.
	SaveResource(ctx context.Context, res Resource) error

	// ExistsEntry reports whether this participant already processed the
	// given attempt. True means the inbound envelope is a redelivery.
	ExistsEntry(ctx context.Context, orderID, transactionID string) (bool, error)

	// ApplyMutation persists the mutated resource and its ledger entry
	// atomically: a crash between the two must not leave one without the
	// other.
	ApplyMutation(ctx context.Context, res Resource, entry Entry) error

	// FindEntries returns every ledger entry for an attempt, in the order
	// they were recorded. A saga may touch multiple resources.
	FindEntries(ctx context.Context, orderID, transactionID string) ([]Entry, error)
}
