package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"netcanvas/internal/codec"
	"netcanvas/internal/domain"
)

// SlogLevel maps the configured level name to a slog level
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Logger builds the process logger writing to w
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// IDGenerator returns the configured identifier source
func (c *Config) IDGenerator() (domain.IDGenerator, error) {
	return domain.NewIDGenerator(c.IDs)
}

// SeedTopology returns the topology a new session starts with
func (c *Config) SeedTopology(ids domain.IDGenerator) (*domain.Topology, error) {
	switch {
	case c.Seed.Path != "":
		f, err := os.Open(c.Seed.Path)
		if err != nil {
			return nil, fmt.Errorf("open seed: %w", err)
		}
		defer f.Close()

		topo, err := codec.NewYAMLCodec().WithIDs(ids).Parse(f)
		if err != nil {
			return nil, fmt.Errorf("load seed %s: %w", c.Seed.Path, err)
		}
		return topo, nil
	case c.Seed.Empty:
		return domain.NewTopology(), nil
	default:
		return domain.DefaultSeed(ids), nil
	}
}
