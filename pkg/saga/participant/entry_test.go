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
	"testing"
)

func TestNewEntry(t *testing.T) {
	entry, err := NewEntry("order-1", "tx-1", "COMIC_BOOKS", 10, -5, 5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if entry.Before != 10 || entry.Delta != -5 || entry.After != 5 {
		t.Errorf("Entry fields not preserved: %+v", entry)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

func TestNewEntry_Validation(t *testing.T) {
	tests := []struct {
		name                          string
		orderID, transactionID, code  string
		before, delta, after          int
	}{
		{"missing order id", "", "tx-1", "COMIC_BOOKS", 10, -5, 5},
		{"missing transaction id", "order-1", "", "COMIC_BOOKS", 10, -5, 5},
		{"missing resource", "order-1", "tx-1", "", 10, -5, 5},
		{"arithmetic mismatch", "order-1", "tx-1", "COMIC_BOOKS", 10, -5, 6},
	}

	for _, test := range tests {
		if _, err := NewEntry(test.orderID, test.transactionID, test.code, test.before, test.delta, test.after); err == nil {
			t.Errorf("%s: expected error, got nil", test.name)
		}
	}
}

func TestNewEntry_ZeroDelta(t *testing.T) {
	entry, err := NewEntry("order-1", "tx-1", "COMIC_BOOKS", 10, 0, 10)
	if err != nil {
		t.Fatalf("Zero delta entry should be valid: %v", err)
	}
	if entry.Before != entry.After {
		t.Error("Zero delta entry must keep before == after")
	}
}
