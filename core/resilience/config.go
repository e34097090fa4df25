package resilience

import "time"

// Config holds retry and circuit breaker settings.
type Config struct {
	// MaxRetries is the total number of attempts per call, including the first.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// BaseDelayMs is the backoff after the first failed attempt, in milliseconds.
	// Each further attempt doubles it.
	BaseDelayMs int `mapstructure:"base_delay_ms" default:"1000"`
	// BreakerThreshold is the consecutive failure count that opens a circuit.
	BreakerThreshold int `mapstructure:"breaker_threshold" default:"5"`
	// BreakerTimeoutMs is how long an open circuit refuses calls, in milliseconds.
	BreakerTimeoutMs int `mapstructure:"breaker_timeout_ms" default:"60000"`
}

// BaseDelay returns the first backoff delay as a duration.
func (c Config) BaseDelay() time.Duration {
	return time.Duration(c.BaseDelayMs) * time.Millisecond
}

// BreakerTimeout returns the open-circuit cooldown as a duration.
func (c Config) BreakerTimeout() time.Duration {
	return time.Duration(c.BreakerTimeoutMs) * time.Millisecond
}

// withDefaults replaces unusable knob values. A zero BaseDelayMs is kept
// as-is; immediate retries are valid in tests.
func (c Config) withDefaults() Config {
	if c.MaxRetries < 1 {
		c.MaxRetries = 3
	}
	if c.BaseDelayMs < 0 {
		c.BaseDelayMs = 1000
	}
	if c.BreakerThreshold < 1 {
		c.BreakerThreshold = 5
	}
	if c.BreakerTimeoutMs <= 0 {
		c.BreakerTimeoutMs = 60000
	}
	return c
}
