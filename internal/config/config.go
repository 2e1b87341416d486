// Package config loads the server configuration from YAML with environment
// overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/textart-server/internal/domain"
)

// Environment variables that override file values.
const (
	EnvAddr     = "TEXTART_ADDR"
	EnvLogLevel = "TEXTART_LOG_LEVEL"
	EnvConfig   = "TEXTART_CONFIG"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Staging StagingConfig `yaml:"staging"`
	ASCII   ASCIIConfig   `yaml:"ascii"`
	Glyph   GlyphConfig   `yaml:"glyph"`
	Render  RenderConfig  `yaml:"render"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORS            CORSConfig    `yaml:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type StagingConfig struct {
	Mode string `yaml:"mode"`
	Dir  string `yaml:"dir"`
}

type ASCIIConfig struct {
	Width            int               `yaml:"width"`
	MaxWidth         int               `yaml:"max_width"`
	MaxHeight        int               `yaml:"max_height"`
	MaxPixels        int64             `yaml:"max_pixels"`
	Threshold        int               `yaml:"threshold"`
	Palette          string            `yaml:"palette"`
	Luminance        string            `yaml:"luminance"`
	Filter           string            `yaml:"filter"`
	AspectCorrection float64           `yaml:"aspect_correction"`
	Palettes         map[string]string `yaml:"palettes"`
}

type GlyphConfig struct {
	DefaultFont string `yaml:"default_font"`
	FontDir     string `yaml:"font_dir"`
}

// RenderConfig holds the colours used when a grid is returned as PNG.
type RenderConfig struct {
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":5000",
			MaxUploadBytes:  16 << 20,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORS:            CORSConfig{AllowedOrigins: []string{"*"}},
		},
		Staging: StagingConfig{Mode: "memory"},
		ASCII: ASCIIConfig{
			Width:            100,
			MaxWidth:         1000,
			MaxHeight:        1000,
			MaxPixels:        40_000_000,
			Threshold:        255,
			Palette:          "standard",
			Luminance:        "bt601",
			Filter:           "lanczos",
			AspectCorrection: 1.65,
		},
		Glyph:  GlyphConfig{DefaultFont: "standard"},
		Render: RenderConfig{Foreground: "#DDDDDD", Background: "#0B0B0B"},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file. Unknown keys are
// rejected.
func Load(path string) (Config, error) {
	const op = "config.load"

	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, domain.NewError(op, domain.KindInvalidConfig, fmt.Errorf("failed to read %s: %w", path, err))
		}

		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, domain.NewError(op, domain.KindInvalidConfig, fmt.Errorf("failed to parse %s: %w", path, err))
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
}

// Validate checks ranges and enumerations. Palette, luminance, filter and
// font names are resolved later by the packages that own them.
func (c Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Server.Addr == "" {
		add("server.addr must not be empty")
	}
	if c.Server.MaxUploadBytes <= 0 {
		add("server.max_upload_bytes must be positive")
	}
	if c.Server.ShutdownTimeout < 0 {
		add("server.shutdown_timeout must not be negative")
	}

	switch c.Staging.Mode {
	case "memory", "disk":
	default:
		add("staging.mode must be memory or disk, got %q", c.Staging.Mode)
	}

	a := c.ASCII
	if a.Width <= 0 {
		add("ascii.width must be positive")
	}
	if a.MaxWidth <= 0 || a.Width > a.MaxWidth {
		add("ascii.max_width must be positive and at least ascii.width")
	}
	if a.MaxHeight <= 0 {
		add("ascii.max_height must be positive")
	}
	if a.MaxPixels <= 0 {
		add("ascii.max_pixels must be positive")
	}
	if a.Threshold < 0 || a.Threshold > 256 {
		add("ascii.threshold must be within [0,256], got %d", a.Threshold)
	}
	if a.AspectCorrection <= 0 {
		add("ascii.aspect_correction must be positive")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		add("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		add("log.format must be json or text, got %q", c.Log.Format)
	}

	if len(errs) > 0 {
		return domain.NewError("config.validate", domain.KindInvalidConfig, errors.Join(errs...))
	}
	return nil
}
