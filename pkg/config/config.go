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

// Package config loads service configuration from a sagaflow.yaml file in
// the working directory, with environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Config holds the settings shared by all sagaflow services. Each binary
// reads the subset it needs.
type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Database struct {
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		DBName   string `mapstructure:"dbname"`
	} `mapstructure:"database"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Saga struct {
		// Deadline is the maximum age of a saga before the orchestrator
		// forces compensation. Zero disables the deadline.
		Deadline time.Duration `mapstructure:"deadline"`
	} `mapstructure:"saga"`
}

// DSN builds the MySQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Database.Username, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.DBName)
}

var (
	cfg  *Config
	once sync.Once
)

// GetConfig loads the configuration once and returns it on every call.
func GetConfig() *Config {
	once.Do(func() {
		v := viper.New()
		v.SetConfigName("sagaflow")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/sagaflow")
		v.SetEnvPrefix("SAGAFLOW")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		v.SetDefault("kafka.brokers", []string{"localhost:9092"})
		v.SetDefault("kafka.group_id", "sagaflow")
		v.SetDefault("server.port", "8080")
		v.SetDefault("saga.deadline", time.Duration(0))

		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				panic(fmt.Errorf("fatal error reading config file: %w", err))
			}
		}

		cfg = &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			panic(fmt.Errorf("unable to decode config into struct: %w", err))
		}
	})
	return cfg
}
