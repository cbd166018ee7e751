package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version int          `yaml:"version"`
	Server  ServerConfig `yaml:"server"`
	Canvas  CanvasConfig `yaml:"canvas"`
	IDs     string       `yaml:"ids" validate:"oneof=counter uuid"`
	Log     LogConfig    `yaml:"log"`
	Seed    SeedConfig   `yaml:"seed"`
}

// ServerConfig holds HTTP host settings
type ServerConfig struct {
	Addr            string   `yaml:"addr" validate:"required"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	KeepAlive       Duration `yaml:"keepalive"` // SSE keep-alive interval
}

// CanvasConfig holds the drawing surface size, in canvas units
type CanvasConfig struct {
	Width         float64 `yaml:"width" validate:"gt=0"`
	Height        float64 `yaml:"height" validate:"gt=0"`
	DragThreshold float64 `yaml:"drag_threshold" validate:"gte=0"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// SeedConfig selects the topology a session starts with. An empty path uses
// the built-in two-device seed unless Empty is set.
type SeedConfig struct {
	Path  string `yaml:"path,omitempty"`
	Empty bool   `yaml:"empty,omitempty"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
