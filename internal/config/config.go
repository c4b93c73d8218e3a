// Package config resolves shelf settings from flags and environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/idilsaglam/shelf/internal/store/jsonstore"
)

// Environment variables that provide flag defaults.
const (
	EnvStore     = "SHELF_STORE"
	EnvLogLevel  = "SHELF_LOG_LEVEL"
	EnvLogFormat = "SHELF_LOG_FORMAT"
	EnvLogFile   = "SHELF_LOG_FILE"
	EnvTheme     = "SHELF_THEME"
	EnvColor     = "SHELF_COLOR"
	EnvPassword  = "SHELF_STORE_PASSWORD"
)

type Config struct {
	Store     string // store DSN, see store.ParseDSN
	LogLevel  string
	LogFormat string // console|json
	LogFile   string // TUI log destination
	Theme     string // classic|neon|mono
	Color     string // auto|always|never
}

// Default returns the configuration with environment overrides applied.
func Default() Config {
	return Config{
		Store:     EnvOr(EnvStore, "file:"+jsonstore.DefaultFileName),
		LogLevel:  EnvOr(EnvLogLevel, "warn"),
		LogFormat: EnvOr(EnvLogFormat, "console"),
		LogFile:   EnvOr(EnvLogFile, "shelf.log"),
		Theme:     EnvOr(EnvTheme, "classic"),
		Color:     EnvOr(EnvColor, "auto"),
	}
}

func EnvOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// Dir is the per-user settings directory (~/.shelf).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".shelf"), nil
}
