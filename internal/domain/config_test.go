package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() ClickConfig {
	return ClickConfig{
		Destination: Point{X: 100, Y: 100},
		Kind:        ClickLeft,
		Interval:    100 * time.Millisecond,
	}
}

func TestClickConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ClickConfig)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(*ClickConfig) {},
		},
		{
			name:   "zero interval allowed",
			mutate: func(c *ClickConfig) { c.Interval = 0 },
		},
		{
			name:    "unknown kind",
			mutate:  func(c *ClickConfig) { c.Kind = "triple" },
			wantErr: "unsupported click kind",
		},
		{
			name:    "negative interval",
			mutate:  func(c *ClickConfig) { c.Interval = -time.Millisecond },
			wantErr: "interval",
		},
		{
			name:    "negative max clicks",
			mutate:  func(c *ClickConfig) { c.MaxClicks = -1 },
			wantErr: "max clicks",
		},
		{
			name:    "negative max duration",
			mutate:  func(c *ClickConfig) { c.MaxDuration = -time.Second },
			wantErr: "max duration",
		},
		{
			name:    "randomize without variance",
			mutate:  func(c *ClickConfig) { c.Randomize = true },
			wantErr: "variance",
		},
		{
			name:   "randomize with variance",
			mutate: func(c *ClickConfig) { c.Randomize = true; c.Variance = 2.5 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRandomizedPointStaysWithinVariance(t *testing.T) {
	cfg := validConfig()
	cfg.Randomize = true
	cfg.Variance = 5

	rng := rand.New(rand.NewSource(1))
	base := Point{X: 500, Y: 300}

	for i := 0; i < 1000; i++ {
		p := cfg.RandomizedPoint(base, rng)
		assert.InDelta(t, base.X, p.X, cfg.Variance)
		assert.InDelta(t, base.Y, p.Y, cfg.Variance)
	}
}

func TestRandomizedPointDisabledReturnsInput(t *testing.T) {
	cfg := validConfig()
	rng := rand.New(rand.NewSource(1))

	p := Point{X: 500, Y: 300}
	assert.Equal(t, p, cfg.RandomizedPoint(p, rng))
}
