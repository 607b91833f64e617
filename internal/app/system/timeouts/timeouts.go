// internal/app/system/timeouts/timeouts.go
// Package timeouts holds the context deadlines handlers put on database work.
//
// Values are set once at startup (bootstrap.Startup) and read per request:
//   - Ping: health checks
//   - Short: single-document reads
//   - Medium: list queries, single writes
//   - Long: transactional work across collections (registration,
//     organization provisioning)
package timeouts

import (
	"sync/atomic"
	"time"
)

const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

// Config is a full set of timeouts. In Configure, zero fields keep the
// current value.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

func defaults() Config {
	return Config{Ping: DefaultPing, Short: DefaultShort, Medium: DefaultMedium, Long: DefaultLong}
}

var current atomic.Pointer[Config]

func init() { Reset() }

func load() Config { return *current.Load() }

// Ping, Short, Medium and Long return the timeout for that class of work.
func Ping() time.Duration   { return load().Ping }
func Short() time.Duration  { return load().Short }
func Medium() time.Duration { return load().Medium }
func Long() time.Duration   { return load().Long }

// Current returns the timeouts in effect.
func Current() Config { return load() }

// Configure overrides the non-zero fields of cfg.
func Configure(cfg Config) {
	next := load()
	pick := func(dst *time.Duration, v time.Duration) {
		if v > 0 {
			*dst = v
		}
	}
	pick(&next.Ping, cfg.Ping)
	pick(&next.Short, cfg.Short)
	pick(&next.Medium, cfg.Medium)
	pick(&next.Long, cfg.Long)
	current.Store(&next)
}

// Reset restores the defaults.
func Reset() {
	d := defaults()
	current.Store(&d)
}
