// Copyright 2025 The trino-go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"sync/atomic"

	"github.com/BurntSushi/toml"
	"github.com/docker/go-units"
	"github.com/kokizzu/trino/util/logutil"
	"github.com/pingcap/errors"
)

// Defaults for the execution engine.
const (
	// DefMaxChunkSize is the default max number of rows one chunk holds.
	DefMaxChunkSize = 1024
	// DefExpectedGroups is the default expected distinct partition count used
	// to size group hash tables.
	DefExpectedGroups = 10000
	// DefMemQuotaQuery is the default engine-wide memory quota.
	DefMemQuotaQuery = "1GB"
)

// Config contains configuration options.
type Config struct {
	Log         Log         `toml:"log" json:"log"`
	Performance Performance `toml:"performance" json:"performance"`
}

// Log is the log section of config.
type Log struct {
	// Log level.
	Level string `toml:"level" json:"level"`
	// Log format, one of json or text.
	Format string `toml:"format" json:"format"`
	// Log file name, empty means stderr.
	File string `toml:"file" json:"file"`
}

// Performance is the performance section of the config.
type Performance struct {
	// MaxChunkSize is the max number of rows a chunk carries.
	MaxChunkSize int `toml:"max-chunk-size" json:"max-chunk-size"`
	// ExpectedGroups sizes the group hash tables of grouping operators.
	ExpectedGroups int `toml:"expected-groups" json:"expected-groups"`
	// MemQuotaQuery is a human readable byte size, e.g. "512MB".
	MemQuotaQuery string `toml:"mem-quota-query" json:"mem-quota-query"`
}

var defaultConf = Config{
	Log: Log{
		Level:  logutil.DefaultLogLevel,
		Format: logutil.DefaultLogFormat,
	},
	Performance: Performance{
		MaxChunkSize:   DefMaxChunkSize,
		ExpectedGroups: DefExpectedGroups,
		MemQuotaQuery:  DefMemQuotaQuery,
	},
}

var globalConf atomic.Pointer[Config]

func init() {
	conf := defaultConf
	globalConf.Store(&conf)
}

// NewConfig creates a new config instance with default value.
func NewConfig() *Config {
	conf := defaultConf
	return &conf
}

// GetGlobalConfig returns the global configuration for this server.
// It should store configuration from command line and configuration file.
// Other parts of the system can read the global configuration use this
// function.
func GetGlobalConfig() *Config {
	return globalConf.Load()
}

// StoreGlobalConfig stores a new config to the globalConf.
func StoreGlobalConfig(conf *Config) {
	globalConf.Store(conf)
}

// Load loads config options from a toml file.
func (c *Config) Load(confFile string) error {
	_, err := toml.DecodeFile(confFile, c)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(c.Valid())
}

// Valid checks whether the config is valid.
func (c *Config) Valid() error {
	if c.Performance.MaxChunkSize <= 0 {
		return errors.Errorf("max-chunk-size should be greater than 0, got %d", c.Performance.MaxChunkSize)
	}
	if c.Performance.ExpectedGroups <= 0 {
		return errors.Errorf("expected-groups should be greater than 0, got %d", c.Performance.ExpectedGroups)
	}
	if _, err := c.MemQuotaBytes(); err != nil {
		return errors.Trace(err)
	}
	return nil
}

// MemQuotaBytes parses the configured memory quota into bytes.
// "0" disables the quota.
func (c *Config) MemQuotaBytes() (int64, error) {
	if c.Performance.MemQuotaQuery == "" || c.Performance.MemQuotaQuery == "0" {
		return 0, nil
	}
	quota, err := units.RAMInBytes(c.Performance.MemQuotaQuery)
	if err != nil {
		return 0, errors.Annotatef(err, "invalid mem-quota-query %q", c.Performance.MemQuotaQuery)
	}
	return quota, nil
}
