// Package constants defines shared constants and environment variable names
// used throughout pagenav.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// Environment variables that override values loaded from the config file.
const (
	LogLevelEnvVar     = "PAGENAV_LOG_LEVEL"
	LogPathEnvVar      = "PAGENAV_LOG_PATH"
	LocaleEnvVar       = "PAGENAV_LOCALE"
	RedisAddrEnvVar    = "PAGENAV_REDIS_ADDR"
	ManifestURLEnvVar  = "PAGENAV_MANIFEST_URL"
	InputDeviceEnvVar  = "PAGENAV_INPUT_DEVICE"
	InitialRouteEnvVar = "PAGENAV_INITIAL_ROUTE"
)

// Defaults applied when neither the config file nor the environment set a value.
const (
	DefaultLocale          = "en"
	DefaultInitialRoute    = "home"
	DefaultHistoryKey      = "pagenav:history"
	DefaultHistoryTTL      = 24 * time.Hour
	DefaultResolverTimeout = 5 * time.Second
	DefaultMetricsNS       = "pagenav"

	// DefaultTransitionDuration is how long the demo renderer lets a page
	// animate before reporting the transition as finished.
	DefaultTransitionDuration = 300 * time.Millisecond
)

// ClearMode selects how a router's history is truncated on clear.
type ClearMode string

const (
	// ClearKeepTop keeps the most recent history entry.
	ClearKeepTop ClearMode = "keep-top"
	// ClearAll empties the history completely.
	ClearAll ClearMode = "all"
)
