package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/untoldecay/noteskeep/internal/core"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Manage user-defined schema/hook scripts",
}

var scriptLoadCmd = &cobra.Command{
	Use:   "load <file.js>",
	Short: "Load a user script, registering its schemas and hooks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(func(ws *core.Workspace) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			if err := ws.LoadUserScript(string(src)); err != nil {
				fatal(err)
			}
			log.Debug("user script loaded", "file", args[0])
			return nil
		})
	},
}

var scriptClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop all user-registered schemas and hooks from the running registry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(func(ws *core.Workspace) error {
			ws.ClearUserRegistrations()
			log.Debug("user script registrations cleared")
			return nil
		})
	},
}

func init() {
	scriptCmd.AddCommand(scriptLoadCmd)
	scriptCmd.AddCommand(scriptClearCmd)
	rootCmd.AddCommand(scriptCmd)
}
