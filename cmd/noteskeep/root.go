package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/untoldecay/noteskeep/internal/config"
	"github.com/untoldecay/noteskeep/internal/core"
	"github.com/untoldecay/noteskeep/internal/logging"
	"github.com/untoldecay/noteskeep/internal/storage/sqlite"
)

var (
	cfg        config.Config
	log        *logging.Logger
	workspace  *core.Workspace
	jsonOutput bool

	flagWorkspacePath string
	flagLogLevel      string
)

var rootCmd = &cobra.Command{
	Use:           "noteskeep",
	Short:         "A local, single-user hierarchical note store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagWorkspacePath, "workspace", "w", "", "path to the workspace database (defaults to NOTESKEEP_WORKSPACE_PATH / config workspace.path)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

// fatal prints a user-facing error message and exits 1. noteskeep.Error
// values are projected through UserMessage; anything else is printed
// verbatim.
func fatal(err error) {
	msg := core.UserMessage(err)
	if jsonOutput {
		_ = json.NewEncoder(os.Stderr).Encode(map[string]string{"error": msg})
	} else {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	}
	os.Exit(1)
}

func outputJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "error: encoding JSON output: %v\n", err)
		os.Exit(1)
	}
}

func resolveWorkspacePath() (string, error) {
	if flagWorkspacePath != "" {
		return flagWorkspacePath, nil
	}
	if cfg.WorkspacePath != "" {
		return cfg.WorkspacePath, nil
	}
	return "", fmt.Errorf("no workspace path given: pass --workspace, set NOTESKEEP_WORKSPACE_PATH, or configure workspace.path")
}

// purgeStrategyOption builds the operation-log purge strategy the resolved
// config describes, for use as a core.Option when opening a workspace.
func purgeStrategyOption() core.Option {
	if cfg.PurgeStrategy == "sync" {
		return core.WithPurgeStrategy(sqlite.WithSyncStrategy(cfg.PurgeRetention))
	}
	return core.WithPurgeStrategy(sqlite.LocalOnlyStrategy(cfg.PurgeKeepLast))
}

// withWorkspace loads config, opens the workspace at the resolved path,
// runs fn, and always closes the workspace afterward. Every subcommand
// but init uses this to avoid repeating the open/close boilerplate.
func withWorkspace(fn func(ws *core.Workspace) error) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	log = logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})

	path, err := resolveWorkspacePath()
	if err != nil {
		return err
	}
	ws, err := core.OpenWorkspace(path, purgeStrategyOption())
	if err != nil {
		return err
	}
	workspace = ws
	defer ws.Close()

	return fn(ws)
}
