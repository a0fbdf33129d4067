// Package config loads the otb configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/catalog"
)

// Config controls logging, extraction and metrics output.
//
// Example config.toml:
//
//	[log]
//	level = "debug"
//	format = "console"
//
//	[extract]
//	workers = 8
//	identifiers = ["Body", "Axis"]
type Config struct {
	Log     Log     `toml:"log"`
	Extract Extract `toml:"extract"`
	Metrics Metrics `toml:"metrics"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `toml:"level"`  // debug, info, warn or error
	Format      string `toml:"format"` // console or json
	Output      string `toml:"output"` // path, stderr or stdout
	Development bool   `toml:"development"`
}

// Extract configures the import driver.
type Extract struct {
	Workers     int      `toml:"workers"`
	Identifiers []string `toml:"identifiers"` // empty means all
	Output      string   `toml:"output"`      // GeoJSON path, "-" for stdout
}

// Metrics configures the Prometheus textfile output.
type Metrics struct {
	Path string `toml:"path"` // empty disables metrics output
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: Log{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		Extract: Extract{
			Workers: 4,
			Output:  "-",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes out-of-range values and rejects unknown names.
func (c *Config) Validate() error {
	if c.Extract.Workers < 1 {
		c.Extract.Workers = 1
	}
	if c.Extract.Output == "" {
		c.Extract.Output = "-"
	}

	c.Log.Level = strings.ToLower(c.Log.Level)
	switch c.Log.Level {
	case "":
		c.Log.Level = "info"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "":
		c.Log.Format = "console"
	case "console", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}

	if _, err := c.IdentifierFilter(); err != nil {
		return err
	}
	return nil
}

// IdentifierFilter parses Extract.Identifiers.
func (c *Config) IdentifierFilter() ([]catalog.RepresentationIdentifier, error) {
	ids := make([]catalog.RepresentationIdentifier, 0, len(c.Extract.Identifiers))
	for _, name := range c.Extract.Identifiers {
		id, ok := catalog.ParseIdentifier(name)
		if !ok {
			return nil, fmt.Errorf("config: unknown representation identifier %q", name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
