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
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// resourceRow is the database shape of a Resource. Each participant maps it
// onto its own table, e.g. inventories or accounts.
type resourceRow struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"uniqueIndex;not null"`
	Available int       `gorm:"not null"`
	UpdatedAt time.Time
}

// ledgerRow is the database shape of an Entry.
type ledgerRow struct {
	ID            uint      `gorm:"primaryKey"`
	OrderID       string    `gorm:"index:idx_attempt;not null"`
	TransactionID string    `gorm:"index:idx_attempt;not null"`
	Resource      string    `gorm:"not null"`
	OldQuantity   int       `gorm:"not null"`
	Delta         int       `gorm:"not null"`
	NewQuantity   int       `gorm:"not null"`
	CreatedAt     time.Time
}

// GormRepository implements Repository over a pair of MySQL tables. The
// table names are injected so every participant service reuses the same
// implementation against its own schema.
type GormRepository struct {
	db            *gorm.DB
	resourceTable string
	ledgerTable   string
}

// NewGormRepository creates a repository over the given tables.
func NewGormRepository(db *gorm.DB, resourceTable, ledgerTable string) (*GormRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm repository requires a database handle")
	}
	if resourceTable == "" || ledgerTable == "" {
		return nil, fmt.Errorf("gorm repository requires resource and ledger table names")
	}
	return &GormRepository{db: db, resourceTable: resourceTable, ledgerTable: ledgerTable}, nil
}

// FindResource implements Repository.
func (r *GormRepository) FindResource(ctx context.Context, code string) (Resource, error) {
	var row resourceRow
	err := r.db.WithContext(ctx).Table(r.resourceTable).
		Where("code = ?", code).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Resource{}, ErrResourceNotFound
	}
	if err != nil {
		return Resource{}, err
	}
	return Resource{Code: row.Code, Available: row.Available}, nil
}

// SaveResource implements Repository.
func (r *GormRepository) SaveResource(ctx context.Context, res Resource) error {
	result := r.db.WithContext(ctx).Table(r.resourceTable).
		Where("code = ?", res.Code).
		Updates(map[string]interface{}{
			"available":  res.Available,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResourceNotFound
	}
	return nil
}

// ExistsEntry implements Repository.
func (r *GormRepository) ExistsEntry(ctx context.Context, orderID, transactionID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table(r.ledgerTable).
		Where("order_id = ? AND transaction_id = ?", orderID, transactionID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ApplyMutation implements Repository. The resource update and the ledger
// append run in one local transaction.
func (r *GormRepository) ApplyMutation(ctx context.Context, res Resource, entry Entry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Table(r.resourceTable).
			Where("code = ?", res.Code).
			Updates(map[string]interface{}{
				"available":  res.Available,
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrResourceNotFound
		}
		return tx.Table(r.ledgerTable).Create(&ledgerRow{
			OrderID:       entry.OrderID,
			TransactionID: entry.TransactionID,
			Resource:      entry.Resource,
			OldQuantity:   entry.Before,
			Delta:         entry.Delta,
			NewQuantity:   entry.After,
			CreatedAt:     entry.CreatedAt,
		}).Error
	})
}

// FindEntries implements Repository.
func (r *GormRepository) FindEntries(ctx context.Context, orderID, transactionID string) ([]Entry, error) {
	var rows []ledgerRow
	err := r.db.WithContext(ctx).Table(r.ledgerTable).
		Where("order_id = ? AND transaction_id = ?", orderID, transactionID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			OrderID:       row.OrderID,
			TransactionID: row.TransactionID,
			Resource:      row.Resource,
			Before:        row.OldQuantity,
			Delta:         row.Delta,
			After:         row.NewQuantity,
			CreatedAt:     row.CreatedAt,
		})
	}
	return entries, nil
}

// Migrate creates the participant's tables when they do not exist.
func (r *GormRepository) Migrate() error {
	if err := r.db.Table(r.resourceTable).AutoMigrate(&resourceRow{}); err != nil {
		return err
	}
	return r.db.Table(r.ledgerTable).AutoMigrate(&ledgerRow{})
}
