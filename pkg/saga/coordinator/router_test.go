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

package coordinator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchestrated-saga/sagaflow/pkg/saga"
)

func routedEvent(t *testing.T, source saga.Source, status saga.Status, history ...saga.History) *saga.Event {
	t.Helper()
	event, err := saga.NewEvent("order-1")
	require.NoError(t, err)
	event.Source = source
	event.Status = status
	for _, h := range history {
		event.AddHistory(h)
	}
	return event
}

func TestRouter_ForwardPath(t *testing.T) {
	router, err := NewRouter(DefaultTopology())
	require.NoError(t, err)

	tests := []struct {
		name     string
		source   saga.Source
		expected saga.Topic
		terminal bool
	}{
		{"saga entry", saga.SourceOrchestrator, saga.TopicProductValidationSuccess, false},
		{"after product validation", saga.SourceProductValidation, saga.TopicInventorySuccess, false},
		{"after inventory", saga.SourceInventory, saga.TopicPaymentSuccess, false},
		{"after last step", saga.SourcePayment, saga.TopicFinishSuccess, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := router.Route(routedEvent(t, tt.source, saga.StatusSuccess))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, decision.Topic)
			assert.Equal(t, tt.terminal, decision.Terminal)
			assert.False(t, decision.Compensation)
		})
	}
}

func TestRouter_CompensationUnwindsMostRecentFirst(t *testing.T) {
	router, err := NewRouter(DefaultTopology())
	require.NoError(t, err)

	// Payment refused after product validation and inventory succeeded.
	event := routedEvent(t, saga.SourcePayment, saga.StatusRollbackPending,
		saga.History{Source: saga.SourceProductValidation, Status: saga.StatusSuccess},
		saga.History{Source: saga.SourceInventory, Status: saga.StatusSuccess},
		saga.History{Source: saga.SourcePayment, Status: saga.StatusRollbackPending},
	)

	decision, err := router.Route(event)
	require.NoError(t, err)
	assert.Equal(t, saga.TopicInventoryFail, decision.Topic, "most recent succeeded step unwinds first")
	assert.True(t, decision.Compensation)

	// Inventory compensated: product validation is next.
	event.AddHistory(saga.History{Source: saga.SourceInventory, Status: saga.StatusFail})
	event.Source = saga.SourceInventory
	event.Status = saga.StatusFail

	decision, err = router.Route(event)
	require.NoError(t, err)
	assert.Equal(t, saga.TopicProductValidationFail, decision.Topic)

	// Everything compensated: terminal failure.
	event.AddHistory(saga.History{Source: saga.SourceProductValidation, Status: saga.StatusFail})
	event.Source = saga.SourceProductValidation

	decision, err = router.Route(event)
	require.NoError(t, err)
	assert.Equal(t, saga.TopicFinishFail, decision.Topic)
	assert.True(t, decision.Terminal)
}

func TestRouter_FirstStepFailureGoesStraightToTerminal(t *testing.T) {
	router, err := NewRouter(DefaultTopology())
	require.NoError(t, err)

	event := routedEvent(t, saga.SourceProductValidation, saga.StatusRollbackPending,
		saga.History{Source: saga.SourceProductValidation, Status: saga.StatusRollbackPending},
	)

	decision, err := router.Route(event)
	require.NoError(t, err)
	assert.Equal(t, saga.TopicFinishFail, decision.Topic, "nothing succeeded, nothing to unwind")
	assert.True(t, decision.Terminal)
}

func TestRouter_FailingStepIsNotCompensated(t *testing.T) {
	router, err := NewRouter(DefaultTopology())
	require.NoError(t, err)

	// Inventory itself failed mid-apply: only product validation unwinds.
	event := routedEvent(t, saga.SourceInventory, saga.StatusRollbackPending,
		saga.History{Source: saga.SourceProductValidation, Status: saga.StatusSuccess},
		saga.History{Source: saga.SourceInventory, Status: saga.StatusRollbackPending},
	)

	decision, err := router.Route(event)
	require.NoError(t, err)
	assert.Equal(t, saga.TopicProductValidationFail, decision.Topic)
}

func TestRouter_RouteErrors(t *testing.T) {
	router, err := NewRouter(DefaultTopology())
	require.NoError(t, err)

	_, err = router.Route(nil)
	assert.Error(t, err)

	_, err = router.Route(routedEvent(t, saga.SourceInventory, saga.Status(42)))
	assert.Error(t, err)

	event := routedEvent(t, saga.Source(42), saga.StatusSuccess)
	_, err = router.Route(event)
	assert.Error(t, err, "success from a source outside the topology is unroutable")
}

func TestRouter_DeadlineForcesCompensation(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	router, err := NewRouter(DefaultTopology(),
		WithDeadline(time.Minute),
		WithClock(func() time.Time { return now }),
	)
	require.NoError(t, err)

	event := routedEvent(t, saga.SourceInventory, saga.StatusSuccess,
		saga.History{Source: saga.SourceProductValidation, Status: saga.StatusSuccess},
		saga.History{Source: saga.SourceInventory, Status: saga.StatusSuccess},
	)
	event.CreatedAt = now.Add(-2 * time.Minute)

	decision, err := router.Route(event)
	require.NoError(t, err)
	assert.True(t, decision.Compensation, "expired saga must unwind instead of advancing")
	assert.Equal(t, saga.TopicInventoryFail, decision.Topic)

	// Within the deadline the same envelope advances normally.
	event.CreatedAt = now.Add(-30 * time.Second)
	decision, err = router.Route(event)
	require.NoError(t, err)
	assert.Equal(t, saga.TopicPaymentSuccess, decision.Topic)
}

func TestRouter_DeterministicForSameEnvelope(t *testing.T) {
	router, err := NewRouter(DefaultTopology())
	require.NoError(t, err)

	event := routedEvent(t, saga.SourcePayment, saga.StatusRollbackPending,
		saga.History{Source: saga.SourceProductValidation, Status: saga.StatusSuccess},
		saga.History{Source: saga.SourceInventory, Status: saga.StatusSuccess},
		saga.History{Source: saga.SourcePayment, Status: saga.StatusRollbackPending},
	)

	first, err := router.Route(event)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := router.Route(event)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
