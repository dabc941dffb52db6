// Package config loads pagenav settings from a TOML file, with environment
// variables taking precedence over file values.
//
// Example file:
//
//	log_level = "debug"
//	locale = "de"
//	initial_route = "home"
//	clear_mode = "all"
//
//	[resolver]
//	base_url = "https://pages.example.com"
//	timeout = "3s"
//
//	[history]
//	redis_addr = "localhost:6379"
//	key = "player-1"
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/pagenav/pkg/pagenav/constants"
)

// Duration is a time.Duration written as a string ("300ms") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Config struct {
	LogLevel     string              `toml:"log_level"`
	LogPath      string              `toml:"log_path"`
	Locale       string              `toml:"locale"`
	InitialRoute string              `toml:"initial_route"`
	ClearMode    constants.ClearMode `toml:"clear_mode"`
	Transition   Duration            `toml:"transition"`

	Resolver ResolverConfig `toml:"resolver"`
	History  HistoryConfig  `toml:"history"`
	Input    InputConfig    `toml:"input"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

type ResolverConfig struct {
	BaseURL string   `toml:"base_url"`
	Timeout Duration `toml:"timeout"`
}

type HistoryConfig struct {
	RedisAddr string   `toml:"redis_addr"`
	Key       string   `toml:"key"`
	TTL       Duration `toml:"ttl"`
}

type InputConfig struct {
	Device string `toml:"device"`
}

type MetricsConfig struct {
	Namespace string `toml:"namespace"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:     "info",
		Locale:       constants.DefaultLocale,
		InitialRoute: constants.DefaultInitialRoute,
		ClearMode:    constants.ClearKeepTop,
		Transition:   Duration{constants.DefaultTransitionDuration},
		Resolver:     ResolverConfig{Timeout: Duration{constants.DefaultResolverTimeout}},
		History:      HistoryConfig{Key: "default", TTL: Duration{constants.DefaultHistoryTTL}},
		Metrics:      MetricsConfig{Namespace: constants.DefaultMetricsNS},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, fmt.Errorf("config: %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	set := func(dst *string, name string) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	set(&c.LogLevel, constants.LogLevelEnvVar)
	set(&c.LogPath, constants.LogPathEnvVar)
	set(&c.Locale, constants.LocaleEnvVar)
	set(&c.InitialRoute, constants.InitialRouteEnvVar)
	set(&c.Resolver.BaseURL, constants.ManifestURLEnvVar)
	set(&c.History.RedisAddr, constants.RedisAddrEnvVar)
	set(&c.Input.Device, constants.InputDeviceEnvVar)
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	var errs []error
	switch c.ClearMode {
	case constants.ClearKeepTop, constants.ClearAll:
	default:
		errs = append(errs, fmt.Errorf("config: clear_mode %q: want %q or %q", c.ClearMode, constants.ClearKeepTop, constants.ClearAll))
	}
	if c.InitialRoute == "" {
		errs = append(errs, errors.New("config: initial_route is empty"))
	}
	if c.Transition.Duration < 0 {
		errs = append(errs, errors.New("config: transition must not be negative"))
	}
	if c.Resolver.BaseURL != "" && !strings.HasPrefix(c.Resolver.BaseURL, "http://") && !strings.HasPrefix(c.Resolver.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("config: resolver.base_url %q is not an http(s) URL", c.Resolver.BaseURL))
	}
	return errors.Join(errs...)
}
