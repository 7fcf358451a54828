package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
server:
  port: 9191
  mode: release
optimizer:
  base_url: http://optimizer.internal:5000
  request_timeout: 30s
gate:
  enabled: true
  secret: forge-2024
export:
  output_dir: /tmp/reports
  report_prefix: SteelWorks
history:
  path: ":memory:"
log:
  level: debug
  format: console
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := Load(writeTempConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9191 {
		t.Errorf("server.port = %d, want 9191", cfg.Server.Port)
	}
	if cfg.Server.Mode != "release" {
		t.Errorf("server.mode = %q, want release", cfg.Server.Mode)
	}
	if cfg.Optimizer.BaseURL != "http://optimizer.internal:5000" {
		t.Errorf("optimizer.base_url = %q", cfg.Optimizer.BaseURL)
	}
	if cfg.Optimizer.RequestTimeout != 30*time.Second {
		t.Errorf("optimizer.request_timeout = %s, want 30s", cfg.Optimizer.RequestTimeout)
	}
	if cfg.Export.ReportPrefix != "SteelWorks" {
		t.Errorf("export.report_prefix = %q", cfg.Export.ReportPrefix)
	}

	// Unset fields must still receive defaults.
	if cfg.Gate.Header != DefaultGateHeader {
		t.Errorf("gate.header default not applied: %q", cfg.Gate.Header)
	}
	if cfg.Server.ReadTimeout != DefaultReadTimeout {
		t.Errorf("server.read_timeout default not applied: %s", cfg.Server.ReadTimeout)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	bad := `
server:
  port: 9191
  mode: production
`
	if _, err := Load(writeTempConfig(t, bad)); err == nil {
		t.Fatal("expected validation error for invalid server.mode")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ALLOY_SERVER_PORT", "7070")
	t.Setenv("ALLOY_OPTIMIZER_BASE_URL", "http://localhost:5555")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("env override not applied: server.port = %d", cfg.Server.Port)
	}
	if cfg.Optimizer.BaseURL != "http://localhost:5555" {
		t.Errorf("env override not applied: optimizer.base_url = %q", cfg.Optimizer.BaseURL)
	}
}
