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

// Package payment is the charging participant: it debits the order total
// from the client's account balance and credits it back on compensation.
package payment

import (
	"fmt"

	"github.com/orchestrated-saga/sagaflow/pkg/saga"
	"github.com/orchestrated-saga/sagaflow/pkg/saga/participant"
)

// Planner turns an order into a single demand: the order total in cents
// against the client's account.
func Planner(order saga.Order) ([]participant.Demand, error) {
	if order.ClientID == "" {
		return nil, fmt.Errorf("order %s has no client id", order.ID)
	}
	if order.TotalAmount <= 0 {
		return nil, fmt.Errorf("order %s has non-positive total %d", order.ID, order.TotalAmount)
	}
	return []participant.Demand{{Resource: order.ClientID, Quantity: order.TotalAmount}}, nil
}
