// Package config defines the process configuration value object and its
// loading. Configuration is constructed once at process start and passed by
// parameter into the sun calculator and the sequencer; nothing reads it from
// ambient state.
package config

import (
	"fmt"
	"time"

	"github.com/mpeters/sunwatch/internal/command"
	"github.com/mpeters/sunwatch/internal/sun"
)

// Location is the fixed observation point. Name and Region are display-only.
type Location struct {
	Name      string  `koanf:"name" yaml:"name"`
	Region    string  `koanf:"region" yaml:"region"`
	Timezone  string  `koanf:"timezone" yaml:"timezone"`
	Latitude  float64 `koanf:"latitude" yaml:"latitude"`
	Longitude float64 `koanf:"longitude" yaml:"longitude"`
}

// Config contains everything the three actions consume: the location, the
// event driving command selection, the rule table, and the frame source
// directory for collection.
type Config struct {
	Location  Location      `koanf:"location" yaml:"location"`
	Event     string        `koanf:"event" yaml:"event"`
	SourceDir string        `koanf:"source_dir" yaml:"source_dir"`
	Rules     command.Table `koanf:"rules" yaml:"rules"`
}

// Default returns the built-in configuration, matching the sample shipped by
// `sunwatch init`.
func Default() *Config {
	return &Config{
		Location: Location{
			Name:      "Hamburg",
			Region:    "Germany",
			Timezone:  "Europe/Berlin",
			Latitude:  53.55,
			Longitude: 9.99,
		},
		Event: string(sun.Sunset),
	}
}

// Validate checks value ranges and cross-field consistency. All failures
// wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidConfig, c.Location.Latitude)
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidConfig, c.Location.Longitude)
	}
	if _, err := time.LoadLocation(c.Location.Timezone); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Location.Timezone, err)
	}
	if _, err := sun.ParseEvent(c.Event); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// TimeLocation resolves the configured time zone. Validate must have
// accepted the config first.
func (c *Config) TimeLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Location.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Location.Timezone, err)
	}
	return loc, nil
}

// Calculator builds a sun calculator for the configured location.
func (c *Config) Calculator() (*sun.Calculator, error) {
	loc, err := c.TimeLocation()
	if err != nil {
		return nil, err
	}
	return sun.NewCalculator(c.Location.Latitude, c.Location.Longitude, loc), nil
}
