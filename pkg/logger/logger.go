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

// Package logger provides the shared zap logger used by every service.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	// Logger is the global logger for the application.
	Logger *zap.Logger
	// mu protects Logger from concurrent access
	mu sync.RWMutex
	// initialized tracks whether logger has been initialized
	initialized bool
)

// InitLogger initializes the global logger with the service name attached
// as a field on every entry. Safe to call more than once.
func InitLogger(service string) {
	mu.Lock()
	defer mu.Unlock()

	if initialized && Logger != nil {
		return
	}
	base, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	if service != "" {
		base = base.With(zap.String("service", service))
	}
	Logger = base
	initialized = true
}

// GetLogger returns the global logger, initializing it if necessary.
func GetLogger() *zap.Logger {
	mu.RLock()
	if initialized && Logger != nil {
		defer mu.RUnlock()
		return Logger
	}
	mu.RUnlock()

	InitLogger("")

	mu.RLock()
	defer mu.RUnlock()
	return Logger
}

// ResetLogger resets the logger for testing purposes.
// This should only be used in tests.
func ResetLogger() {
	mu.Lock()
	defer mu.Unlock()

	if Logger != nil {
		_ = Logger.Sync()
	}
	Logger = nil
	initialized = false
}
