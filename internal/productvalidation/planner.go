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

// Package productvalidation is the catalog participant: it checks that
// every ordered product exists without reserving anything, so its ledger
// entries carry a zero delta and compensation is a no-op restore.
package productvalidation

import (
	"fmt"

	"github.com/orchestrated-saga/sagaflow/pkg/saga"
	"github.com/orchestrated-saga/sagaflow/pkg/saga/participant"
)

// Planner turns an order into one zero-quantity demand per distinct
// product code. A zero-quantity demand still resolves the resource, which
// is the existence check.
func Planner(order saga.Order) ([]participant.Demand, error) {
	if len(order.Products) == 0 {
		return nil, fmt.Errorf("order %s has no products", order.ID)
	}
	seen := make(map[string]bool, len(order.Products))
	demands := make([]participant.Demand, 0, len(order.Products))
	for _, item := range order.Products {
		code := item.Product.Code
		if code == "" {
			return nil, fmt.Errorf("order %s has a line item without a product code", order.ID)
		}
		if seen[code] {
			continue
		}
		seen[code] = true
		demands = append(demands, participant.Demand{Resource: code})
	}
	return demands, nil
}
