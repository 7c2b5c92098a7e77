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

package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchestrated-saga/sagaflow/pkg/saga"
	"github.com/orchestrated-saga/sagaflow/pkg/saga/participant"
)

func TestPlanner_SingleDemandOfOrderTotal(t *testing.T) {
	demands, err := Planner(saga.Order{
		ID:          "order-1",
		ClientID:    "client-1",
		TotalAmount: 1900,
	})
	require.NoError(t, err)
	assert.Equal(t, []participant.Demand{{Resource: "client-1", Quantity: 1900}}, demands)
}

func TestPlanner_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		order saga.Order
	}{
		{"missing client", saga.Order{ID: "order-1", TotalAmount: 1900}},
		{"zero total", saga.Order{ID: "order-1", ClientID: "client-1"}},
		{"negative total", saga.Order{ID: "order-1", ClientID: "client-1", TotalAmount: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Planner(tt.order)
			assert.Error(t, err)
		})
	}
}
