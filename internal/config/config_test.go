package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != DefaultRuntimeConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.SweepInterval != 30*time.Second || cfg.SchedulerBuffer != 64 {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("DEADLINETODO_DATABASE_PATH", "data/tasks.db")
	t.Setenv("DEADLINETODO_NOTIFICATIONS_DESKTOP", "true")
	t.Setenv("DEADLINETODO_SWEEP_INTERVAL", "10s")
	t.Setenv("DEADLINETODO_SCHEDULER_BUFFER", "128")
	t.Setenv("DEADLINETODO_STATS_HEATMAP_WEEKS", "0")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabasePath != "data/tasks.db" || !cfg.DesktopNotifications {
		t.Fatalf("unexpected env overrides: %+v", cfg)
	}
	if cfg.SweepInterval != 10*time.Second || cfg.SchedulerBuffer != 128 {
		t.Fatalf("unexpected numeric overrides: %+v", cfg)
	}
	if cfg.HeatmapWeeks != 12 {
		t.Fatalf("expected non-positive heat map weeks to fall back, got %d", cfg.HeatmapWeeks)
	}
}

func TestRuntimeConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "database:\n  path: file.db\nlog:\n  level: debug\nwidget:\n  addr: 0.0.0.0:9000\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DEADLINETODO_LOG_LEVEL", "warn")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"--config", path, "--widget-addr", "127.0.0.1:9999"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabasePath != "file.db" {
		t.Fatalf("expected file value for database path, got %q", cfg.DatabasePath)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected env to beat file, got %q", cfg.LogLevel)
	}
	if cfg.WidgetAddr != "127.0.0.1:9999" {
		t.Fatalf("expected flag to beat file, got %q", cfg.WidgetAddr)
	}
	if cfg.HeatmapWeeks != 12 {
		t.Fatalf("expected unset flag to keep default, got %d", cfg.HeatmapWeeks)
	}
}

func TestRuntimeConfigMissingFile(t *testing.T) {
	t.Setenv("DEADLINETODO_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := Load(nil); err != nil {
		t.Fatalf("missing config file should be ignored, got %v", err)
	}
}
