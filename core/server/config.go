package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// MonthCacheTTLSeconds is how long the month view cache keeps a
	// venue's events before rebuilding. Zero disables caching.
	MonthCacheTTLSeconds int `mapstructure:"month_cache_ttl_seconds" default:"60"`
}

// MonthCacheTTL returns the month view cache lifetime. Negative values
// count as disabled.
func (c Config) MonthCacheTTL() time.Duration {
	if c.MonthCacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.MonthCacheTTLSeconds) * time.Second
}
