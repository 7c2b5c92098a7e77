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

package db

import (
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/orchestrated-saga/sagaflow/pkg/config"
)

var (
	// dbConn is the global database connection for the service.
	dbConn *gorm.DB
	// once is used to ensure that the database connection is only initialized once.
	once sync.Once
	// newDbConn is a factory function for creating a database connection.
	// It's a variable so it can be replaced by a mock in tests.
	newDbConn = func() (*gorm.DB, error) {
		return gorm.Open(mysql.Open(config.GetConfig().DSN()), &gorm.Config{})
	}
)

// GetDB returns the global database connection for the service.
func GetDB() *gorm.DB {
	once.Do(func() {
		db, err := newDbConn()
		if err != nil {
			panic("fail to connect database")
		}
		dbConn = db
	})
	return dbConn
}
