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

package order

import (
	"gorm.io/gorm"
)

// LogRepository is the interface for the saga log store.
type LogRepository interface {
	SaveLog(log *SagaLog) error
	LogsByOrder(orderID string) ([]SagaLog, error)
}

// logRepository is the gorm implementation of LogRepository.
type logRepository struct {
	db *gorm.DB
}

// NewLogRepository creates a new saga log repository.
func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepository{db: db}
}

// SaveLog persists one terminal outcome.
func (r logRepository) SaveLog(log *SagaLog) error {
	result := r.db.Create(log)
	return result.Error
}

// LogsByOrder returns every recorded outcome for an order, oldest first.
func (r logRepository) LogsByOrder(orderID string) ([]SagaLog, error) {
	var logs []SagaLog
	result := r.db.Where("order_id = ?", orderID).Order("id").Find(&logs)
	if result.Error != nil {
		return nil, result.Error
	}
	return logs, nil
}
