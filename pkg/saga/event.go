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

// Package saga provides the event envelope, history model, status
// enumeration, and error taxonomy shared by the saga orchestrator and its
// participants. The envelope is the full saga context: it travels through
// the broker, every recipient owns only its processing of the copy it
// received, and the append-only history is the saga's audit trail.
package saga

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrMissingOrderID indicates an envelope was constructed without a saga
// identity.
var ErrMissingOrderID = errors.New("saga event requires an order id")

// Product identifies a sellable item. UnitPrice is expressed in cents.
type Product struct {
	Code      string `json:"code"`
	Unit      string `json:"unit"`
	UnitPrice int    `json:"unitPrice"`
}

// OrderProduct is one line item of an order payload.
type OrderProduct struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Order is the business payload carried by the envelope. TotalAmount is in
// cents so the payment participant can treat it as an integral quantity.
type Order struct {
	ID            string         `json:"id"`
	ClientID      string         `json:"clientId"`
	Products      []OrderProduct `json:"products"`
	CreatedAt     time.Time      `json:"createdAt"`
	TransactionID string         `json:"transactionId"`
	TotalAmount   int            `json:"totalAmount"`
	TotalItems    int            `json:"totalItems"`
}

// History is one entry of the envelope's audit trail: which component
// acted, with what outcome, and when. Entries are only ever appended.
type History struct {
	Source    Source    `json:"source"`
	Status    Status    `json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Event is the saga envelope: identity, payload, outcome of the last
// completed step, the component that produced that outcome, and the full
// ordered history of every step attempted so far.
type Event struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transactionId"`
	OrderID       string    `json:"orderId"`
	Payload       Order     `json:"payload"`
	Source        Source    `json:"source"`
	Status        Status    `json:"status"`
	EventHistory  []History `json:"eventHistory"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewEvent creates an envelope for a new saga attempt. The order id is the
// business saga identity and is required; the transaction id identifies
// this attempt and a retry must create a new one.
func NewEvent(orderID string) (*Event, error) {
	if orderID == "" {
		return nil, ErrMissingOrderID
	}
	now := time.Now().UTC()
	return &Event{
		ID:            uuid.NewString(),
		TransactionID: uuid.NewString(),
		OrderID:       orderID,
		CreatedAt:     now,
	}, nil
}

// AddHistory appends one audit entry describing the step that just ran.
// Callers must not reuse or edit a previously appended entry.
func (e *Event) AddHistory(entry History) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	e.EventHistory = append(e.EventHistory, entry)
}

// RecordStep stamps the envelope with the given outcome and appends the
// matching history entry. Every participant step, forward or compensating,
// goes through here so status, source, and history never disagree.
func (e *Event) RecordStep(source Source, status Status, message string) {
	e.Source = source
	e.Status = status
	e.AddHistory(History{
		Source:  source,
		Status:  status,
		Message: message,
	})
}

// SucceededSources returns the participants that have a successful apply
// recorded in the history, in the order they completed. The orchestrator
// derives compensation targets from this list.
func (e *Event) SucceededSources() []Source {
	var out []Source
	for _, h := range e.EventHistory {
		if h.Status == StatusSuccess && h.Source != SourceOrchestrator {
			out = append(out, h.Source)
		}
	}
	return out
}

// Compensated reports whether the given participant already has a
// compensation outcome (a FAIL entry) recorded in the history.
func (e *Event) Compensated(source Source) bool {
	for _, h := range e.EventHistory {
		if h.Status == StatusFail && h.Source == source {
			return true
		}
	}
	return false
}
