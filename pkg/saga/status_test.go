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
	"testing"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{StatusSuccess, "SUCCESS"},
		{StatusRollbackPending, "ROLLBACK_PENDING"},
		{StatusFail, "FAIL"},
		{Status(999), "UNKNOWN"},
	}

	for _, test := range tests {
		if result := test.status.String(); result != test.expected {
			t.Errorf("Expected %s, got %s for status %d", test.expected, result, test.status)
		}
	}
}

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status   Status
		expected bool
	}{
		{StatusSuccess, true},
		{StatusRollbackPending, true},
		{StatusFail, true},
		{Status(999), false},
		{Status(-1), false},
	}

	for _, test := range tests {
		if result := test.status.IsValid(); result != test.expected {
			t.Errorf("Expected %v, got %v for status %d", test.expected, result, test.status)
		}
	}
}

func TestStatus_JSONRoundTrip(t *testing.T) {
	for _, status := range []Status{StatusSuccess, StatusRollbackPending, StatusFail} {
		data, err := json.Marshal(status)
		if err != nil {
			t.Fatalf("Marshal failed for %s: %v", status, err)
		}
		var decoded Status
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal failed for %s: %v", status, err)
		}
		if decoded != status {
			t.Errorf("Round trip mismatch: sent %s, got %s", status, decoded)
		}
	}
}

func TestStatus_UnmarshalRejectsUnknown(t *testing.T) {
	var status Status
	if err := json.Unmarshal([]byte(`"PENDING"`), &status); err == nil {
		t.Error("Expected error for unknown status name, got nil")
	}
	if err := json.Unmarshal([]byte(`42`), &status); err == nil {
		t.Error("Expected error for non-string status, got nil")
	}
}

func TestStatus_MarshalRejectsUnknown(t *testing.T) {
	if _, err := json.Marshal(Status(999)); err == nil {
		t.Error("Expected error marshaling unknown status, got nil")
	}
}

func TestSource_String(t *testing.T) {
	tests := []struct {
		source   Source
		expected string
	}{
		{SourceOrchestrator, "ORCHESTRATOR"},
		{SourceProductValidation, "PRODUCT_VALIDATION_SERVICE"},
		{SourceInventory, "INVENTORY_SERVICE"},
		{SourcePayment, "PAYMENT_SERVICE"},
		{Source(999), "UNKNOWN"},
	}

	for _, test := range tests {
		if result := test.source.String(); result != test.expected {
			t.Errorf("Expected %s, got %s for source %d", test.expected, result, test.source)
		}
	}
}

func TestSource_JSONRoundTrip(t *testing.T) {
	sources := []Source{SourceOrchestrator, SourceProductValidation, SourceInventory, SourcePayment}
	for _, source := range sources {
		data, err := json.Marshal(source)
		if err != nil {
			t.Fatalf("Marshal failed for %s: %v", source, err)
		}
		var decoded Source
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal failed for %s: %v", source, err)
		}
		if decoded != source {
			t.Errorf("Round trip mismatch: sent %s, got %s", source, decoded)
		}
	}
}

func TestSource_UnmarshalRejectsUnknown(t *testing.T) {
	var source Source
	if err := json.Unmarshal([]byte(`"BILLING_SERVICE"`), &source); err == nil {
		t.Error("Expected error for unknown source name, got nil")
	}
}
