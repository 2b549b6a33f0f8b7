package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"shapemask/internal/logx"
)

// Progress modes.
const (
	ProgressAuto  = "auto"
	ProgressTUI   = "tui"
	ProgressPlain = "plain"
	ProgressNone  = "none"
)

// Config holds the settings that can come from a TOML file.
type Config struct {
	Progress  string `toml:"progress"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	OutputExt string `toml:"output_ext"`
	AreaExt   string `toml:"area_ext"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Progress:  ProgressAuto,
		LogLevel:  "warn",
		LogFormat: "text",
		OutputExt: ".msk",
		AreaExt:   ".are",
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks enumerated values and extensions.
func (c Config) Validate() error {
	switch c.Progress {
	case ProgressAuto, ProgressTUI, ProgressPlain, ProgressNone:
	default:
		return fmt.Errorf("progress: unknown mode %q", c.Progress)
	}
	if _, err := logx.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log_format: unknown format %q", c.LogFormat)
	}
	if !strings.HasPrefix(c.OutputExt, ".") || !strings.HasPrefix(c.AreaExt, ".") {
		return errors.New("extensions must start with a dot")
	}
	if c.OutputExt == c.AreaExt {
		return errors.New("output_ext and area_ext must differ")
	}
	return nil
}
