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
	"errors"
	"fmt"
	"testing"
)

func TestSagaError_Error(t *testing.T) {
	err := NewSagaError(ErrCodeInsufficientResource, "product is out of stock")
	expected := "INSUFFICIENT_RESOURCE: product is out of stock"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapError(cause, ErrCodeStorageError, "failed to save resource")

	if !errors.Is(err, cause) {
		t.Error("Expected wrapped error to match cause via errors.Is")
	}
	if err.Code != ErrCodeStorageError {
		t.Errorf("Expected code %s, got %s", ErrCodeStorageError, err.Code)
	}
}

func TestWrapError_NilCause(t *testing.T) {
	if err := WrapError(nil, ErrCodeStorageError, "ignored"); err != nil {
		t.Errorf("Expected nil for nil cause, got %v", err)
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"saga error", NewSagaError(ErrCodeDuplicateTransaction, "dup"), ErrCodeDuplicateTransaction},
		{"wrapped saga error", fmt.Errorf("outer: %w", NewSagaError(ErrCodeResourceNotFound, "missing")), ErrCodeResourceNotFound},
		{"plain error", errors.New("boom"), ErrCodeStorageError},
	}

	for _, test := range tests {
		if code := CodeOf(test.err); code != test.expected {
			t.Errorf("%s: expected %s, got %s", test.name, test.expected, code)
		}
	}
}

func TestIsDecodeError(t *testing.T) {
	if !IsDecodeError(NewSagaError(ErrCodeDecodeError, "bad json")) {
		t.Error("Expected decode error to be recognized")
	}
	if IsDecodeError(NewSagaError(ErrCodeStorageError, "db down")) {
		t.Error("Expected storage error not to be a decode error")
	}
	if IsDecodeError(errors.New("plain")) {
		t.Error("Expected plain error not to be a decode error")
	}
}
