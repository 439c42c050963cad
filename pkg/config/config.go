// Package config loads realm-atlas settings from an optional YAML file and
// environment variables. Command-line flags are applied on top by cmd/realm.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dd0wney/realm-atlas/pkg/dataset"
	"github.com/dd0wney/realm-atlas/pkg/logging"
	"github.com/dd0wney/realm-atlas/pkg/validation"
	"gopkg.in/yaml.v3"
)

// Default configuration values
const (
	DefaultResolution      = 1.0
	DefaultTopN            = 5
	DefaultHTTPAddr        = ":8080"
	DefaultMapWidth        = 80
	DefaultMapHeight       = 30
	DefaultShutdownTimeout = 10 * time.Second
)

// Environment variables read by ApplyEnv
const (
	EnvDataset    = "REALM_DATASET"
	EnvHTTPAddr   = "REALM_HTTP_ADDR"
	EnvResolution = "REALM_RESOLUTION"
	EnvTopN       = "REALM_TOP_N"
	EnvLogLevel   = "LOG_LEVEL"
	EnvLogFormat  = "LOG_FORMAT"
)

// Config holds every tunable setting
type Config struct {
	// Dataset is a builtin dataset name or a path to a YAML dataset file
	Dataset string `yaml:"dataset"`

	Log      LogConfig      `yaml:"log"`
	Analysis AnalysisConfig `yaml:"analysis"`
	HTTP     HTTPConfig     `yaml:"http"`
	Map      MapConfig      `yaml:"map"`
}

// LogConfig selects log verbosity and encoding
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// AnalysisConfig holds query defaults
type AnalysisConfig struct {
	Resolution float64 `yaml:"resolution"`
	TopN       int     `yaml:"top_n"`
}

// HTTPConfig configures the serve command
type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// MapConfig sizes the ASCII map in characters
type MapConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Dataset: dataset.DefaultName,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Analysis: AnalysisConfig{
			Resolution: DefaultResolution,
			TopN:       DefaultTopN,
		},
		HTTP: HTTPConfig{
			Addr:            DefaultHTTPAddr,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Map: MapConfig{
			Width:  DefaultMapWidth,
			Height: DefaultMapHeight,
		},
	}
}

// Load builds a configuration from defaults, the YAML file at path (if
// path is not empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := cfg.decode(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode overlays YAML onto cfg. Keys missing from the document keep their
// current values.
func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// ApplyEnv overrides settings from environment variables
func (c *Config) ApplyEnv() error {
	c.Dataset = getEnvOrDefault(EnvDataset, c.Dataset)
	c.HTTP.Addr = getEnvOrDefault(EnvHTTPAddr, c.HTTP.Addr)
	c.Log.Level = getEnvOrDefault(EnvLogLevel, c.Log.Level)
	c.Log.Format = getEnvOrDefault(EnvLogFormat, c.Log.Format)

	if v := os.Getenv(EnvResolution); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvResolution, v, err)
		}
		c.Analysis.Resolution = r
	}
	if v := os.Getenv(EnvTopN); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTopN, v, err)
		}
		c.Analysis.TopN = n
	}
	return nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	return validation.NewConfigValidator("config").
		Required("dataset", c.Dataset).
		OneOf("log.level", strings.ToLower(c.Log.Level), []string{"debug", "info", "warn", "warning", "error"}).
		OneOf("log.format", strings.ToLower(c.Log.Format), []string{"json", "text", "console"}).
		PositiveFloat("analysis.resolution", c.Analysis.Resolution).
		Positive("analysis.top_n", c.Analysis.TopN).
		HostPort("http.addr", c.HTTP.Addr).
		Custom("http.shutdown_timeout", func() error {
			if c.HTTP.ShutdownTimeout <= 0 {
				return fmt.Errorf("value %s must be positive", c.HTTP.ShutdownTimeout)
			}
			return nil
		}).
		RangeInt("map.width", c.Map.Width, 20, 400).
		RangeInt("map.height", c.Map.Height, 10, 200).
		Validate()
}

// Logger returns a logger writing to w at the configured level and format
func (c *Config) Logger(w io.Writer) logging.Logger {
	return logging.NewLogger(w, logging.ParseLevel(c.Log.Level), logging.ParseFormat(c.Log.Format))
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
