// Package config provides configuration loading, defaults, and validation for
// AlloyFrontier.
package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort      = 8080
	DefaultServerMode      = "debug"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultOptimizerBaseURL = "http://localhost:5000"
	// Optimizer runs 40 NSGA-II generations; allow well beyond typical solve time.
	DefaultOptimizerTimeout = 60 * time.Second

	DefaultGateHeader = "X-Access-Key"

	DefaultExportOutputDir    = "./reports"
	DefaultReportPrefix       = "AlloyFrontier_Report"
	DefaultExportImageWidth   = 1280
	DefaultExportImageHeight  = 800

	DefaultHistoryPath = "alloyfrontier.db"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with the platform default.
// Fields already set by the caller are left unchanged so that explicit
// configuration always wins.  It must be called after unmarshalling and
// before Validate() so optional-but-defaulted fields are never seen as
// missing.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// ── Optimizer ─────────────────────────────────────────────────────────────
	if cfg.Optimizer.BaseURL == "" {
		cfg.Optimizer.BaseURL = DefaultOptimizerBaseURL
	}
	if cfg.Optimizer.RequestTimeout == 0 {
		cfg.Optimizer.RequestTimeout = DefaultOptimizerTimeout
	}

	// ── Gate ──────────────────────────────────────────────────────────────────
	if cfg.Gate.Header == "" {
		cfg.Gate.Header = DefaultGateHeader
	}

	// ── Export ────────────────────────────────────────────────────────────────
	if cfg.Export.OutputDir == "" {
		cfg.Export.OutputDir = DefaultExportOutputDir
	}
	if cfg.Export.ReportPrefix == "" {
		cfg.Export.ReportPrefix = DefaultReportPrefix
	}
	if cfg.Export.ImageWidth == 0 {
		cfg.Export.ImageWidth = DefaultExportImageWidth
	}
	if cfg.Export.ImageHeight == 0 {
		cfg.Export.ImageHeight = DefaultExportImageHeight
	}

	// ── History ───────────────────────────────────────────────────────────────
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
