package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	unsetenv(t, "DATA_DIR")
	unsetenv(t, "DATABASE_PATH")
	unsetenv(t, "COUNTRY_CODE")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataDir != "data" {
		t.Fatalf("expected data dir %q, got %q", "data", cfg.DataDir)
	}
	if cfg.DatabasePath != filepath.Join("data", "guests.db") {
		t.Fatalf("unexpected database path %q", cfg.DatabasePath)
	}
	if cfg.CountryCode != "977" {
		t.Fatalf("unexpected country code %q", cfg.CountryCode)
	}
}

func TestLoadConfig_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	env := "EVENT_NAME=Reception\nDATA_DIR=/srv/guests\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EVENT_NAME", "Wedding")
	unsetenv(t, "DATA_DIR")
	unsetenv(t, "DATABASE_PATH")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.EventName != "Wedding" {
		t.Fatalf("expected environment to win, got %q", cfg.EventName)
	}
	if cfg.DataDir != "/srv/guests" {
		t.Fatalf("expected .env value, got %q", cfg.DataDir)
	}
	if cfg.DatabasePath != filepath.Join("/srv/guests", "guests.db") {
		t.Fatalf("unexpected database path %q", cfg.DatabasePath)
	}
}

// unsetenv removes key for the duration of the test; t.Setenv restores it afterwards.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}
