// Package config defines all configuration structures for AlloyFrontier.
// No I/O or parsing logic lives here — only plain data types and validation.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// OptimizerConfig holds parameters for the external multi-objective
// optimizer service.
type OptimizerConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// GateConfig holds the dashboard access gate parameters.  The gate is a
// cosmetic shared-secret compare, not an authorization boundary: it grants
// no server-side protection and must never be relied upon as security.
type GateConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Secret  string `mapstructure:"secret"`
	Header  string `mapstructure:"header"`
}

// ExportConfig holds report-export parameters.
type ExportConfig struct {
	// OutputDir is the directory report artifacts are written to.
	OutputDir string `mapstructure:"output_dir"`
	// ReportPrefix is the filename prefix: <prefix>_Batch_<n>.pdf.
	ReportPrefix string `mapstructure:"report_prefix"`
	// ImageWidth/ImageHeight size the rasterized view region in pixels.
	ImageWidth  int `mapstructure:"image_width"`
	ImageHeight int `mapstructure:"image_height"`
}

// HistoryConfig holds run-history persistence parameters.
type HistoryConfig struct {
	// Path is the SQLite database file; ":memory:" is accepted for tests.
	Path string `mapstructure:"path"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "console"
	Output string `mapstructure:"output"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for the whole application.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Optimizer OptimizerConfig `mapstructure:"optimizer"`
	Gate      GateConfig      `mapstructure:"gate"`
	Export    ExportConfig    `mapstructure:"export"`
	History   HistoryConfig   `mapstructure:"history"`
	Log       LogConfig       `mapstructure:"log"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	if c.Optimizer.BaseURL == "" {
		return fmt.Errorf("config: optimizer.base_url is required")
	}
	if c.Optimizer.RequestTimeout <= 0 {
		return fmt.Errorf("config: optimizer.request_timeout must be positive, got %s", c.Optimizer.RequestTimeout)
	}

	if c.Gate.Enabled && c.Gate.Secret == "" {
		return fmt.Errorf("config: gate.secret is required when gate.enabled is true")
	}

	if c.Export.OutputDir == "" {
		return fmt.Errorf("config: export.output_dir is required")
	}
	if c.Export.ReportPrefix == "" {
		return fmt.Errorf("config: export.report_prefix is required")
	}
	if c.Export.ImageWidth < 1 || c.Export.ImageHeight < 1 {
		return fmt.Errorf("config: export.image_width and export.image_height must be ≥ 1")
	}

	if c.History.Path == "" {
		return fmt.Errorf("config: history.path is required")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
