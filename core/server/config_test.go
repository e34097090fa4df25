package server_test

import (
	"testing"
	"time"

	"gig-calendar/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_MonthCacheTTL(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    time.Duration
	}{
		{"Default", 60, time.Minute},
		{"Disabled", 0, 0},
		{"Negative", -5, 0},
		{"Custom", 300, 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{MonthCacheTTLSeconds: tt.seconds}
			assert.Equal(t, tt.want, c.MonthCacheTTL())
		})
	}
}
