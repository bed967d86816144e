package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_StorageErrorIsReturned(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	// a regular file where the data directory should be
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATA_DIR", blocker)
	t.Setenv("DATABASE_PATH", filepath.Join(blocker, "guests.db"))

	err := run()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "failed to initialize storage") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewLogger_FallsBackToInfo(t *testing.T) {
	if got := newLogger("verbose").GetLevel().String(); got != "info" {
		t.Fatalf("expected info level, got %s", got)
	}
	if got := newLogger("debug").GetLevel().String(); got != "debug" {
		t.Fatalf("expected debug level, got %s", got)
	}
}
