package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NOTESKEEP_PURGE_STRATEGY", "")
	os.Unsetenv("NOTESKEEP_PURGE_STRATEGY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PurgeStrategy != "local" {
		t.Errorf("PurgeStrategy = %q, want %q", cfg.PurgeStrategy, "local")
	}
	if cfg.PurgeKeepLast != 500 {
		t.Errorf("PurgeKeepLast = %d, want 500", cfg.PurgeKeepLast)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NOTESKEEP_PURGE_STRATEGY", "sync")
	t.Setenv("NOTESKEEP_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PurgeStrategy != "sync" {
		t.Errorf("PurgeStrategy = %q, want %q", cfg.PurgeStrategy, "sync")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestLoadInvalidStrategy(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NOTESKEEP_PURGE_STRATEGY", "bogus")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid purge.strategy")
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	os.Unsetenv("NOTESKEEP_PURGE_STRATEGY")
	os.Unsetenv("NOTESKEEP_LOG_LEVEL")

	if err := os.Mkdir(".noteskeep", 0o755); err != nil {
		t.Fatal(err)
	}
	content := "purge:\n  strategy: sync\n  retentiondays: 7\nlog:\n  level: warn\n"
	if err := os.WriteFile(filepath.Join(".noteskeep", "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PurgeStrategy != "sync" {
		t.Errorf("PurgeStrategy = %q, want %q", cfg.PurgeStrategy, "sync")
	}
	if cfg.PurgeRetention != 7 {
		t.Errorf("PurgeRetention = %d, want 7", cfg.PurgeRetention)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
}

func TestWatchWithoutConfigFileIsNoop(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	os.Unsetenv("NOTESKEEP_PURGE_STRATEGY")

	if _, err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	// No config file was found, so Watch must return without panicking
	// or blocking.
	called := false
	Watch(func(Config) { called = true })
	if called {
		t.Error("onChange should not fire without a watched config file")
	}
}
