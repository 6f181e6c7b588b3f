// Package config defines the server configuration and how it is loaded.
package config

import (
	"fmt"
)

// Config contains process configuration.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// DBPath is the SQLite database file.
	DBPath string `koanf:"db_path"`

	// UploadDir holds competition logos served under /logos.
	UploadDir string `koanf:"upload_dir"`

	// FrontendURLs are the origins allowed by CORS.
	FrontendURLs []string `koanf:"frontend_urls"`

	// AdminPassword protects mutating routes. Empty leaves the API open.
	AdminPassword string `koanf:"admin_password"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `koanf:"log_format"`

	// TargetArrows is the number of arrows a complete score card must add up to.
	TargetArrows int `koanf:"target_arrows"`

	// BaseURL is the public address encoded in standings QR codes.
	// Empty means it is derived from the preferred local IP at startup.
	BaseURL string `koanf:"base_url"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Addr:          ":8000",
		DBPath:        "archery.db",
		UploadDir:     "uploaded_logos",
		FrontendURLs:  []string{"http://localhost:5173", "http://localhost:4173"},
		AdminPassword: "",
		LogLevel:      "info",
		LogFormat:     "text",
		TargetArrows:  28,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DBPath == "":
		return fmt.Errorf("%w: db_path must not be empty", ErrInvalidConfig)
	case c.TargetArrows <= 0:
		return fmt.Errorf("%w: target_arrows must be positive, got %d", ErrInvalidConfig, c.TargetArrows)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
