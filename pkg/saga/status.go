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

package saga

import (
	"encoding/json"
	"fmt"
)

// Status represents the outcome of the last completed saga step.
// It is a closed enumeration: routing is a total function over this set.
type Status int

const (
	// StatusSuccess indicates the last step applied its local effect.
	StatusSuccess Status = iota

	// StatusRollbackPending indicates the last step failed and the saga
	// attempt must be compensated from whichever steps already succeeded.
	StatusRollbackPending

	// StatusFail indicates a step has been compensated (or the saga has
	// reached its failed terminal state).
	StatusFail
)

// statusNames maps Status values to their wire representation. The names
// are part of the envelope format and must never change.
var statusNames = map[Status]string{
	StatusSuccess:         "SUCCESS",
	StatusRollbackPending: "ROLLBACK_PENDING",
	StatusFail:            "FAIL",
}

// String returns the wire name of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsValid returns true if the status is a member of the closed set.
func (s Status) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// MarshalJSON encodes the status as its wire name.
func (s Status) MarshalJSON() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown saga status %d", int(s))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a wire name into a Status. An unrecognized name is
// an error, not a zero value, so malformed envelopes surface as decode
// failures instead of silently becoming SUCCESS.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for status, n := range statusNames {
		if n == name {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown saga status %q", name)
}

// Source identifies which component last acted on an envelope.
type Source int

const (
	// SourceOrchestrator is the saga orchestrator itself.
	SourceOrchestrator Source = iota

	// SourceProductValidation is the product validation participant.
	SourceProductValidation

	// SourceInventory is the inventory participant.
	SourceInventory

	// SourcePayment is the payment participant.
	SourcePayment
)

var sourceNames = map[Source]string{
	SourceOrchestrator:      "ORCHESTRATOR",
	SourceProductValidation: "PRODUCT_VALIDATION_SERVICE",
	SourceInventory:         "INVENTORY_SERVICE",
	SourcePayment:           "PAYMENT_SERVICE",
}

// String returns the wire name of the source.
func (s Source) String() string {
	if name, ok := sourceNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsValid returns true if the source is a member of the closed set.
func (s Source) IsValid() bool {
	_, ok := sourceNames[s]
	return ok
}

// MarshalJSON encodes the source as its wire name.
func (s Source) MarshalJSON() ([]byte, error) {
	name, ok := sourceNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown saga source %d", int(s))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a wire name into a Source.
func (s *Source) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for source, n := range sourceNames {
		if n == name {
			*s = source
			return nil
		}
	}
	return fmt.Errorf("unknown saga source %q", name)
}
