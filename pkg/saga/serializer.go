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
)

// EventSerializer converts envelopes to and from their wire representation.
// The round trip must be lossless for every field, including the full
// history sequence with timestamps.
type EventSerializer interface {
	// Serialize converts an envelope into its wire representation. On
	// failure it returns an empty payload alongside the error so callers
	// publishing fire-and-forget have a defined sentinel.
	Serialize(event *Event) ([]byte, error)

	// Deserialize converts wire data back into an envelope. A failure is an
	// explicit decode error, never a nil envelope with a nil error, so
	// callers can distinguish "no message" from "unparseable message".
	Deserialize(data []byte) (*Event, error)

	// ContentType returns the MIME type of the wire format.
	ContentType() string
}

// JSONEventSerializer implements EventSerializer using JSON.
type JSONEventSerializer struct{}

// NewJSONEventSerializer creates the standard JSON serializer.
func NewJSONEventSerializer() *JSONEventSerializer {
	return &JSONEventSerializer{}
}

// Serialize implements EventSerializer.
func (s *JSONEventSerializer) Serialize(event *Event) ([]byte, error) {
	if event == nil {
		return nil, NewSagaError(ErrCodeValidationError, "cannot serialize nil event")
	}
	data, err := json.Marshal(event)
	if err != nil {
		return nil, WrapError(err, ErrCodeValidationError, "failed to serialize event")
	}
	return data, nil
}

// Deserialize implements EventSerializer.
func (s *JSONEventSerializer) Deserialize(data []byte) (*Event, error) {
	if len(data) == 0 {
		return nil, NewSagaError(ErrCodeDecodeError, "empty payload")
	}
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, WrapError(err, ErrCodeDecodeError, "failed to deserialize event")
	}
	if event.OrderID == "" {
		return nil, NewSagaError(ErrCodeDecodeError, "event payload missing order id")
	}
	return &event, nil
}

// ContentType implements EventSerializer.
func (s *JSONEventSerializer) ContentType() string {
	return "application/json"
}
