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
	"time"
)

// predefined error codes
const (
	ErrCodeDuplicateTransaction = "DUPLICATE_TRANSACTION"
	ErrCodeResourceNotFound     = "RESOURCE_NOT_FOUND"
	ErrCodeInsufficientResource = "INSUFFICIENT_RESOURCE"
	ErrCodeCompensationFailed   = "COMPENSATION_FAILED"
	ErrCodeDecodeError          = "DECODE_ERROR"
	ErrCodeValidationError      = "VALIDATION_ERROR"
	ErrCodeStorageError         = "STORAGE_ERROR"
)

// SagaError is the error type crossing every step boundary. Business and
// validation failures inside a participant are converted into a SagaError
// and then into an envelope state transition; they never propagate as an
// unhandled fault to the broker layer.
type SagaError struct {
	Code      string
	Message   string
	Cause     error
	Timestamp time.Time
}

// NewSagaError creates a SagaError with the given code and message.
func NewSagaError(code, message string) *SagaError {
	return &SagaError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// WrapError wraps an existing error into a SagaError, preserving it as the
// cause. Returns nil if err is nil.
func WrapError(err error, code, message string) *SagaError {
	if err == nil {
		return nil
	}
	se := NewSagaError(code, message)
	se.Cause = err
	return se
}

// Error implements the error interface.
func (e *SagaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %s)", e.Code, e.Message, e.Cause.Error())
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause for errors.Is / errors.As.
func (e *SagaError) Unwrap() error {
	return e.Cause
}

// CodeOf extracts the saga error code from an error chain. Unclassified
// errors report as storage errors, the only non-business failure a
// participant can hit.
func CodeOf(err error) string {
	var se *SagaError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeStorageError
}

// IsDecodeError reports whether the error chain contains a decode failure,
// the only dead-letter case: a message that cannot be parsed cannot be
// routed and must not produce a new envelope.
func IsDecodeError(err error) bool {
	var se *SagaError
	return errors.As(err, &se) && se.Code == ErrCodeDecodeError
}
