// Package timeouts centralizes the context timeouts handlers use for
// database and outbound I/O, so every feature reaches for the same tiers.
//
// Tiers:
//   - Ping: health-check connectivity probes
//   - Short: single-document reads and writes
//   - Medium: list queries and multi-step reads
//   - Long: creates with related writes, file uploads
//
// Defaults can be overridden once at startup with Configure.
package timeouts

import (
	"sync"
	"time"
)

const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

var (
	mu     sync.RWMutex
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
)

// Ping returns the timeout for connectivity probes.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document operations.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the timeout for multi-write operations and uploads.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}

// Config holds override values; zero fields keep the current setting.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// Configure applies overrides. Call during startup, before handlers run.
func Configure(c Config) {
	mu.Lock()
	defer mu.Unlock()
	if c.Ping > 0 {
		ping = c.Ping
	}
	if c.Short > 0 {
		short = c.Short
	}
	if c.Medium > 0 {
		medium = c.Medium
	}
	if c.Long > 0 {
		long = c.Long
	}
}
