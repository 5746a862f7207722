// Package config loads noteskeep's configuration from a file, the
// environment, and built-in defaults, with viper handling precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config is the resolved configuration for a noteskeep invocation.
type Config struct {
	WorkspacePath  string
	PurgeStrategy  string // "local" or "sync"
	PurgeKeepLast  int
	PurgeRetention int // days, used when PurgeStrategy == "sync"
	LogLevel       string
	LogFile        string
}

// lastViper holds the viper instance built by the most recent Load call,
// so Watch can attach to the same config file without re-running
// discovery.
var lastViper *viper.Viper

// Load builds the viper instance, locates a config file if one exists, and
// returns the resolved Config. Precedence (highest to lowest): environment
// variables (NOTESKEEP_*) > config file > defaults.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	configFileSet := false

	// 1. Walk up from CWD looking for ./.noteskeep/config.yaml, so commands
	// work the same from any subdirectory of a workspace checkout.
	if cwd, err := os.Getwd(); err == nil {
		for dir := cwd; dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
			candidate := filepath.Join(dir, ".noteskeep", "config.yaml")
			if _, err := os.Stat(candidate); err == nil {
				v.SetConfigFile(candidate)
				configFileSet = true
				break
			}
		}
	}

	// 2. User config directory (~/.config/noteskeep/config.yaml).
	if !configFileSet {
		if configDir, err := os.UserConfigDir(); err == nil {
			candidate := filepath.Join(configDir, "noteskeep", "config.yaml")
			if _, err := os.Stat(candidate); err == nil {
				v.SetConfigFile(candidate)
				configFileSet = true
			}
		}
	}

	v.SetEnvPrefix("NOTESKEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("workspace.path", "")
	v.SetDefault("purge.strategy", "local")
	v.SetDefault("purge.keeplast", 500)
	v.SetDefault("purge.retentiondays", 30)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	if configFileSet {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	strategy := strings.ToLower(v.GetString("purge.strategy"))
	if strategy != "local" && strategy != "sync" {
		return Config{}, fmt.Errorf("invalid purge.strategy %q: want %q or %q", strategy, "local", "sync")
	}

	lastViper = v
	return Config{
		WorkspacePath:  v.GetString("workspace.path"),
		PurgeStrategy:  strategy,
		PurgeKeepLast:  v.GetInt("purge.keeplast"),
		PurgeRetention: v.GetInt("purge.retentiondays"),
		LogLevel:       v.GetString("log.level"),
		LogFile:        v.GetString("log.file"),
	}, nil
}

// Watch re-reads the config file whenever it changes on disk (via
// fsnotify, through viper.WatchConfig) and calls onChange with the
// freshly resolved Config. Requires a prior call to Load that found a
// config file; otherwise Watch is a no-op, since there is nothing to
// watch. Long-running embedders (not the one-shot CLI) use this to pick
// up a new purge strategy without restarting.
func Watch(onChange func(Config)) {
	v := lastViper
	if v == nil || v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := Load()
		if err != nil {
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
}
