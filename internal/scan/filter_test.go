package scan

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stepfunction-reaper/internal/stepfunctions"
)

func TestIsAged(t *testing.T) {
	now := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		startedAt string
		threshold time.Duration
		want      bool
	}{
		{
			name:      "older than threshold",
			startedAt: "2026-08-21T11:53:00Z",
			threshold: 300 * time.Second,
			want:      true,
		},
		{
			name:      "younger than threshold",
			startedAt: "2026-08-21T11:59:00Z",
			threshold: 300 * time.Second,
			want:      false,
		},
		{
			name:      "exactly at threshold is not aged",
			startedAt: "2026-08-21T11:55:00Z",
			threshold: 300 * time.Second,
			want:      false,
		},
		{
			name:      "zero threshold ages anything in the past",
			startedAt: "2026-08-21T11:59:59Z",
			threshold: 0,
			want:      true,
		},
		{
			name:      "zero threshold does not age the current instant",
			startedAt: "2026-08-21T12:00:00Z",
			threshold: 0,
			want:      false,
		},
		{
			name:      "offset timestamp aged by its UTC instant",
			startedAt: "2026-08-21T13:00:00+02:00", // 11:00Z, one hour old
			threshold: 30 * time.Minute,
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := stepfunctions.ExecutionSummary{ARN: "arn:exec:x", StartedAt: tt.startedAt}

			got, err := IsAged(e, now, tt.threshold)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// Classification is stable under repeated calls.
			again, err := IsAged(e, now, tt.threshold)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestIsAgedUnparseableStart(t *testing.T) {
	e := stepfunctions.ExecutionSummary{ARN: "arn:exec:bad", StartedAt: "yesterday-ish"}

	aged, err := IsAged(e, time.Now(), time.Minute)

	require.Error(t, err)
	assert.False(t, aged)
	assert.Contains(t, err.Error(), "arn:exec:bad")
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		StateMachineARN: "arn:aws:states:us-west-2:123456789012:stateMachine:orders",
		PageSize:        50,
		AgeThreshold:    time.Hour,
		InterPageDelay:  time.Second,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing arn", func(c *Config) { c.StateMachineARN = "" }, "ARN"},
		{"zero page size", func(c *Config) { c.PageSize = 0 }, "page size"},
		{"oversized page", func(c *Config) { c.PageSize = 1001 }, "page size"},
		{"negative threshold", func(c *Config) { c.AgeThreshold = -time.Second }, "age threshold"},
		{"negative delay", func(c *Config) { c.InterPageDelay = -time.Second }, "delay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, strings.ToLower(err.Error()), strings.ToLower(tt.wantErr))
		})
	}
}

func TestStopCauseEmbedsThreshold(t *testing.T) {
	cause := StopCause(45 * time.Minute)
	assert.Contains(t, cause, "45m0s")
}
