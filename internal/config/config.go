// Package config provides configuration management for netcanvas.
//
// Settings come from, in increasing precedence: built-in defaults, a YAML
// config file, a .env file, and NETCANVAS_* environment variables.
//
// Config file locations (priority order):
//  1. $NETCANVAS_CONFIG
//  2. ./netcanvas.yaml
//  3. ~/.config/netcanvas/config.yaml
//  4. /etc/netcanvas/config.yaml
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment overrides
const (
	EnvAddr         = "NETCANVAS_ADDR"
	EnvLogLevel     = "NETCANVAS_LOG_LEVEL"
	EnvCanvasWidth  = "NETCANVAS_CANVAS_WIDTH"
	EnvCanvasHeight = "NETCANVAS_CANVAS_HEIGHT"
	EnvIDs          = "NETCANVAS_IDS"
	EnvSeed         = "NETCANVAS_SEED"
)

// validate is a singleton validator instance
var validate = validator.New()

// Load finds and loads the config file, or starts from defaults if none is
// found. Environment overrides and validation are applied either way.
func Load() (*Config, string, error) {
	_ = godotenv.Load(EnvFileName)

	path := FindConfigPath()
	if path == "" {
		cfg := DefaultConfig()
		if err := cfg.finish(); err != nil {
			return nil, "", err
		}
		return cfg, "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.finish(); err != nil {
		return nil, path, err
	}

	return cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: Duration(10 * time.Second),
			KeepAlive:       Duration(30 * time.Second),
		},
		Canvas: CanvasConfig{
			Width:         800,
			Height:        600,
			DragThreshold: 3,
		},
		IDs: "uuid",
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// finish applies environment overrides and defaults, then validates
func (c *Config) finish() error {
	if err := c.applyEnv(); err != nil {
		return err
	}
	c.applyDefaults()
	return c.Validate()
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Version == 0 {
		c.Version = def.Version
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if c.Server.KeepAlive <= 0 {
		c.Server.KeepAlive = def.Server.KeepAlive
	}
	if c.IDs == "" {
		c.IDs = def.IDs
	}
	c.IDs = strings.ToLower(c.IDs)
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
}

// applyEnv overrides file values with NETCANVAS_* variables
func (c *Config) applyEnv() error {
	if val := os.Getenv(EnvAddr); val != "" {
		c.Server.Addr = val
	}
	if val := os.Getenv(EnvLogLevel); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv(EnvIDs); val != "" {
		c.IDs = val
	}
	if val := os.Getenv(EnvSeed); val != "" {
		c.Seed.Path = val
	}
	if val := os.Getenv(EnvCanvasWidth); val != "" {
		w, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCanvasWidth, err)
		}
		c.Canvas.Width = w
	}
	if val := os.Getenv(EnvCanvasHeight); val != "" {
		h, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCanvasHeight, err)
		}
		c.Canvas.Height = h
	}
	return nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	seed := "built-in"
	switch {
	case c.Seed.Path != "":
		seed = c.Seed.Path
	case c.Seed.Empty:
		seed = "empty"
	}

	summary := fmt.Sprintf("Addr: %s, Log: %s/%s\n", c.Server.Addr, c.Log.Level, c.Log.Format)
	summary += fmt.Sprintf("Canvas: %gx%g, Drag threshold: %g\n", c.Canvas.Width, c.Canvas.Height, c.Canvas.DragThreshold)
	summary += fmt.Sprintf("IDs: %s, Seed: %s", c.IDs, seed)
	return summary
}

// formatValidationError converts validator errors into a single readable error
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s: is required", fe.Namespace()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: must be one of [%s]", fe.Namespace(), fe.Param()))
		case "gt", "gte":
			msgs = append(msgs, fmt.Sprintf("%s: must be %s %s", fe.Namespace(), comparison(fe.Tag()), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %s validation", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func comparison(tag string) string {
	if tag == "gt" {
		return ">"
	}
	return ">="
}
