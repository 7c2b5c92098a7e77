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

// Package order is the saga entry point: it accepts orders over HTTP,
// publishes the opening envelope, and records every terminal outcome.
package order

import (
	"time"
)

// ProductRequest identifies one ordered product.
type ProductRequest struct {
	Code      string `json:"code" binding:"required"`
	Unit      string `json:"unit"`
	UnitPrice int    `json:"unitPrice" binding:"required,min=1"`
}

// OrderProductRequest is one line item of a create request.
type OrderProductRequest struct {
	Product  ProductRequest `json:"product" binding:"required"`
	Quantity int            `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	ClientID string                `json:"clientId" binding:"required"`
	Products []OrderProductRequest `json:"products" binding:"required,min=1,dive"`
}

// CreateOrderResponse acknowledges an accepted order. The saga itself
// completes asynchronously.
type CreateOrderResponse struct {
	OrderID       string `json:"orderId"`
	TransactionID string `json:"transactionId"`
	TotalAmount   int    `json:"totalAmount"`
	TotalItems    int    `json:"totalItems"`
}

// SagaLog is one terminal saga outcome as observed on the ending
// notification topic. Payload holds the final envelope verbatim.
type SagaLog struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       string    `gorm:"not null;type:varchar(64);index" json:"orderId"`
	TransactionID string    `gorm:"not null;type:varchar(64);index" json:"transactionId"`
	Status        string    `gorm:"not null;type:varchar(20)" json:"status"`
	Payload       string    `gorm:"type:json" json:"payload"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TableName maps SagaLog onto the saga_logs table.
func (SagaLog) TableName() string {
	return "saga_logs"
}
