package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mpeters/sunwatch/internal/command"
)

func ptr(f float64) *float64 { return &f }

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"latitude too high", func(c *Config) { c.Location.Latitude = 90.01 }},
		{"latitude too low", func(c *Config) { c.Location.Latitude = -91 }},
		{"longitude too high", func(c *Config) { c.Location.Longitude = 180.5 }},
		{"longitude too low", func(c *Config) { c.Location.Longitude = -200 }},
		{"unknown timezone", func(c *Config) { c.Location.Timezone = "Mars/Olympus" }},
		{"unknown event", func(c *Config) { c.Event = "midnight" }},
		{"empty rule command", func(c *Config) { c.Rules = command.Table{{}} }},
		{"inverted rule bounds", func(c *Config) {
			c.Rules = command.Table{{Min: ptr(2), Max: ptr(1), Run: "echo"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestCalculatorUsesConfiguredLocation(t *testing.T) {
	cfg := Default()
	cfg.Location.Timezone = "UTC"
	cfg.Location.Latitude = 36.97
	cfg.Location.Longitude = -122.03

	calc, err := cfg.Calculator()
	require.NoError(t, err)
	assert.Equal(t, 36.97, calc.Latitude)
	assert.Equal(t, -122.03, calc.Longitude)
	assert.Equal(t, "UTC", calc.Location.String())
}

func TestSampleParsesAndValidates(t *testing.T) {
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(Sample()), &cfg))

	assert.Equal(t, "Hamburg", cfg.Location.Name)
	assert.Equal(t, "sunset", cfg.Event)
	assert.Equal(t, "/data/camera", cfg.SourceDir)
	require.Len(t, cfg.Rules, 2)
	assert.NotEmpty(t, cfg.Rules[0].Run)

	require.NoError(t, cfg.Validate())
}
