package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Validation.Directory != "specs" {
		t.Errorf("directory = %q, want specs", cfg.Validation.Directory)
	}
	if cfg.Validation.Extension != ".md" {
		t.Errorf("extension = %q, want .md", cfg.Validation.Extension)
	}
	if cfg.MaxAge().Minutes() != 5 {
		t.Errorf("max age = %v, want 5m", cfg.MaxAge())
	}
	if cfg.Wait() != 0 {
		t.Errorf("wait = %v, want 0", cfg.Wait())
	}
	if cfg.Logging.Level != "INFO" || cfg.Logging.MaxSizeMB != 10 {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoad_Overrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	viper.Set("validation.directory", "plans")
	viper.Set("validation.wait_seconds", 30)
	viper.Set("paths.state_dir", "/tmp/forge-state")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Validation.Directory != "plans" {
		t.Errorf("directory = %q, want plans", cfg.Validation.Directory)
	}
	if cfg.Wait().Seconds() != 30 {
		t.Errorf("wait = %v, want 30s", cfg.Wait())
	}
	if got := cfg.LogPath(); got != filepath.Join("/tmp/forge-state", "logs", "forge-cli.log") {
		t.Errorf("log path = %q", got)
	}
	if got := cfg.StatsPath(); got != filepath.Join("/tmp/forge-state", "session_stats.json") {
		t.Errorf("stats path = %q", got)
	}
}
