// Package config carries the functional-option configuration surface of the
// reader, following the same Config+Option shape the teacher library uses
// for its FileConfig/ReaderConfig/WriterConfig trio.
package config

import (
	"fmt"
	"runtime"
)

const (
	// DefaultBatchSize is the target number of records per batch (spec §6).
	DefaultBatchSize = 262144

	// DefaultUseLibdeflate controls whether a faster GZIP implementation is
	// preferred when available.
	DefaultUseLibdeflate = true
)

// Config carries the recognized options of spec §6.
type Config struct {
	ThreadCount   int
	BatchSize     int
	UseLibdeflate bool
}

// Default returns a Config initialized with the default values; ThreadCount
// defaults to the number of available processors.
func Default() *Config {
	return &Config{
		ThreadCount:   runtime.GOMAXPROCS(0),
		BatchSize:     DefaultBatchSize,
		UseLibdeflate: DefaultUseLibdeflate,
	}
}

// Apply applies the given options to c in order.
func (c *Config) Apply(options ...Option) {
	for _, opt := range options {
		opt.Configure(c)
	}
}

// Validate returns a non-nil error if the configuration is invalid.
func (c *Config) Validate() error {
	if c.ThreadCount <= 0 {
		return fmt.Errorf("parquet: invalid ThreadCount: %d", c.ThreadCount)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("parquet: invalid BatchSize: %d", c.BatchSize)
	}
	return nil
}

// Option is implemented by types that carry a configuration option.
type Option interface {
	Configure(*Config)
}

type optionFunc func(*Config)

func (f optionFunc) Configure(c *Config) { f(c) }

// ThreadCount sets the size of the decode pool. Defaults to the number of
// available processors.
func ThreadCount(n int) Option {
	return optionFunc(func(c *Config) { c.ThreadCount = n })
}

// BatchSize sets the target number of records per batch. Defaults to
// DefaultBatchSize.
func BatchSize(n int) Option {
	return optionFunc(func(c *Config) { c.BatchSize = n })
}

// UseLibdeflate toggles the GZIP codec's fast path on hosts whose CPU
// supports it; GZIP pages are decoded with klauspost/compress/gzip either
// way, and the standard library's decoder is never used.
func UseLibdeflate(enabled bool) Option {
	return optionFunc(func(c *Config) { c.UseLibdeflate = enabled })
}
