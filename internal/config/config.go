// Package config reads the settings of the svgrender command from the
// environment.
package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgscene/svgscene"
	"github.com/kelseyhightower/envconfig"
)

const prefix = "SVGRENDER"

type Config struct {
	// Width and Height of the output. 0 means the size of the viewBox.
	Width  float64 `envconfig:"WIDTH" default:"0"`
	Height float64 `envconfig:"HEIGHT" default:"0"`
	// Format is "png" or "pdf". When empty, it is deduced from the
	// output file extension.
	Format    string `envconfig:"FORMAT"`
	ErrorMode string `envconfig:"ERROR_MODE" default:"warn"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	// Target is an optional "x,y,w,h" box assigned to the root group.
	Target string `envconfig:"TARGET"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Mode parses the ErrorMode setting.
func (cfg *Config) Mode() (svgscene.ErrorMode, error) {
	switch strings.ToLower(cfg.ErrorMode) {
	case "ignore":
		return svgscene.IgnoreErrorMode, nil
	case "warn", "":
		return svgscene.WarnErrorMode, nil
	case "strict":
		return svgscene.StrictErrorMode, nil
	default:
		return 0, fmt.Errorf("invalid error mode %q", cfg.ErrorMode)
	}
}

func (cfg *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level: %w", err)
	}
	return level, nil
}

// Box is the parsed Target setting.
type Box struct {
	X, Y, Width, Height float64
}

// TargetBox parses the Target setting. It returns false if it is empty.
func (cfg *Config) TargetBox() (Box, bool, error) {
	if strings.TrimSpace(cfg.Target) == "" {
		return Box{}, false, nil
	}
	fields := strings.Split(cfg.Target, ",")
	if len(fields) != 4 {
		return Box{}, false, fmt.Errorf("invalid target %q: expected x,y,w,h", cfg.Target)
	}
	var values [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Box{}, false, fmt.Errorf("invalid target %q: %w", cfg.Target, err)
		}
		values[i] = v
	}
	return Box{values[0], values[1], values[2], values[3]}, true, nil
}
