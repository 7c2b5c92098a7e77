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

func TestNewEvent(t *testing.T) {
	event, err := NewEvent("order-1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", event.OrderID)
	assert.NotEmpty(t, event.ID)
	assert.NotEmpty(t, event.TransactionID)
	assert.Empty(t, event.EventHistory)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestNewEvent_RequiresOrderID(t *testing.T) {
	_, err := NewEvent("")
	assert.ErrorIs(t, err, ErrMissingOrderID)
}

func TestNewEvent_DistinctTransactionPerAttempt(t *testing.T) {
	first, err := NewEvent("order-1")
	require.NoError(t, err)
	second, err := NewEvent("order-1")
	require.NoError(t, err)
	assert.NotEqual(t, first.TransactionID, second.TransactionID)
}

func TestEvent_AddHistoryAppendsOnly(t *testing.T) {
	event, err := NewEvent("order-1")
	require.NoError(t, err)

	event.AddHistory(History{Source: SourceInventory, Status: StatusSuccess, Message: "first"})
	event.AddHistory(History{Source: SourcePayment, Status: StatusRollbackPending, Message: "second"})

	require.Len(t, event.EventHistory, 2)
	assert.Equal(t, "first", event.EventHistory[0].Message)
	assert.Equal(t, "second", event.EventHistory[1].Message)
	assert.False(t, event.EventHistory[0].CreatedAt.IsZero())
	assert.False(t, event.EventHistory[1].CreatedAt.Before(event.EventHistory[0].CreatedAt))
}

func TestEvent_RecordStep(t *testing.T) {
	event, err := NewEvent("order-1")
	require.NoError(t, err)

	event.RecordStep(SourceInventory, StatusSuccess, "inventory updated successfully")

	assert.Equal(t, SourceInventory, event.Source)
	assert.Equal(t, StatusSuccess, event.Status)
	require.Len(t, event.EventHistory, 1)
	assert.Equal(t, SourceInventory, event.EventHistory[0].Source)
	assert.Equal(t, StatusSuccess, event.EventHistory[0].Status)
}

func TestEvent_SucceededSources(t *testing.T) {
	event, err := NewEvent("order-1")
	require.NoError(t, err)

	event.RecordStep(SourceProductValidation, StatusSuccess, "products validated")
	event.RecordStep(SourceInventory, StatusSuccess, "inventory updated")
	event.RecordStep(SourcePayment, StatusRollbackPending, "payment refused")

	assert.Equal(t, []Source{SourceProductValidation, SourceInventory}, event.SucceededSources())
}

func TestEvent_Compensated(t *testing.T) {
	event, err := NewEvent("order-1")
	require.NoError(t, err)

	event.RecordStep(SourceInventory, StatusSuccess, "inventory updated")
	assert.False(t, event.Compensated(SourceInventory))

	event.RecordStep(SourceInventory, StatusFail, "rollback executed for inventory")
	assert.True(t, event.Compensated(SourceInventory))
	assert.False(t, event.Compensated(SourcePayment))
}

func TestEvent_HistoryTimestampsPreserved(t *testing.T) {
	event, err := NewEvent("order-1")
	require.NoError(t, err)

	stamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	event.AddHistory(History{Source: SourceInventory, Status: StatusSuccess, Message: "applied", CreatedAt: stamp})

	require.Len(t, event.EventHistory, 1)
	assert.Equal(t, stamp, event.EventHistory[0].CreatedAt)
}
