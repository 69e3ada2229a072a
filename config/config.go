// Package config loads renderer settings: defaults first, then an optional
// YAML file, then PITCHCAM_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "PITCHCAM_"

// Config holds everything tunable about a render session. Immutable after
// Load.
type Config struct {
	// SamplingRate is the analysis rate of the detection pipeline in Hz.
	SamplingRate int `koanf:"sampling_rate" validate:"gt=0"`

	// TrailWindow is the trailing trajectory window in frames.
	TrailWindow int `koanf:"trail_window" validate:"gt=0"`

	// Skeleton enables the on-video pitch skeleton overlay.
	Skeleton bool `koanf:"skeleton"`

	Radar RadarConfig `koanf:"radar"`

	// TeamColors overrides the default team palette, keyed by team id,
	// values "#rrggbb".
	TeamColors map[string]string `koanf:"team_colors"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `koanf:"log_level" validate:"oneof=trace debug info warn error"`
}

// RadarConfig sizes the radar canvas.
type RadarConfig struct {
	Width  int `koanf:"width" validate:"gt=0"`
	Height int `koanf:"height" validate:"gt=0"`
}

func defaults() Config {
	return Config{
		SamplingRate: 25,
		TrailWindow:  20,
		Skeleton:     false,
		Radar:        RadarConfig{Width: 840, Height: 560},
		LogLevel:     "info",
	}
}

// Load builds the configuration. path may be empty or point at a YAML file;
// a missing file at the default path is not an error, an unreadable
// explicit one is.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading config defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("checking config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return nil, fmt.Errorf("loading config environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// envToKey maps PITCHCAM_RADAR_WIDTH to radar.width. Single-underscore
// settings like SAMPLING_RATE map through the known-key table first so the
// underscore survives.
func envToKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	switch s {
	case "sampling_rate", "trail_window", "log_level":
		return s
	}
	return strings.ReplaceAll(s, "_", ".")
}
