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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent(t *testing.T) *Event {
	t.Helper()
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &Event{
		ID:            "evt-1",
		TransactionID: "tx-1",
		OrderID:       "order-1",
		CreatedAt:     created,
		Source:        SourceInventory,
		Status:        StatusSuccess,
		Payload: Order{
			ID:            "order-1",
			ClientID:      "client-1",
			TransactionID: "tx-1",
			CreatedAt:     created,
			TotalAmount:   3500,
			TotalItems:    7,
			Products: []OrderProduct{
				{Product: Product{Code: "COMIC_BOOKS", Unit: "unit", UnitPrice: 500}, Quantity: 5},
				{Product: Product{Code: "BOARD_GAMES", Unit: "unit", UnitPrice: 500}, Quantity: 2},
			},
		},
		EventHistory: []History{
			{Source: SourceProductValidation, Status: StatusSuccess, Message: "products validated", CreatedAt: created.Add(time.Second)},
			{Source: SourceInventory, Status: StatusSuccess, Message: "inventory updated successfully", CreatedAt: created.Add(2 * time.Second)},
		},
	}
}

func TestJSONEventSerializer_RoundTrip(t *testing.T) {
	serializer := NewJSONEventSerializer()
	event := sampleEvent(t)

	data, err := serializer.Serialize(event)
	require.NoError(t, err)

	decoded, err := serializer.Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, event, decoded)

	// Encode the decoded copy again: both directions must be lossless.
	again, err := serializer.Serialize(decoded)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestJSONEventSerializer_SerializeNil(t *testing.T) {
	serializer := NewJSONEventSerializer()
	data, err := serializer.Serialize(nil)
	assert.Empty(t, data)
	require.Error(t, err)
	assert.Equal(t, ErrCodeValidationError, CodeOf(err))
}

func TestJSONEventSerializer_DeserializeFailures(t *testing.T) {
	serializer := NewJSONEventSerializer()

	tests := []struct {
		name    string
		payload []byte
	}{
		{"empty payload", nil},
		{"malformed json", []byte(`{"orderId": `)},
		{"unknown status name", []byte(`{"orderId":"order-1","status":"PENDING"}`)},
		{"missing order id", []byte(`{"status":"SUCCESS"}`)},
		{"not an object", []byte(`"hello"`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := serializer.Deserialize(tt.payload)
			assert.Nil(t, event)
			require.Error(t, err)
			assert.True(t, IsDecodeError(err), "expected decode error, got %v", err)
		})
	}
}

func TestJSONEventSerializer_ContentType(t *testing.T) {
	assert.Equal(t, "application/json", NewJSONEventSerializer().ContentType())
}
