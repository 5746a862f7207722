package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/untoldecay/noteskeep/internal/config"
	"github.com/untoldecay/noteskeep/internal/core"
	"github.com/untoldecay/noteskeep/internal/logging"
)

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Create a new workspace database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		if flagLogLevel != "" {
			cfg.LogLevel = flagLogLevel
		}
		log = logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})

		ws, err := core.CreateWorkspace(args[0], purgeStrategyOption())
		if err != nil {
			fatal(err)
		}
		defer ws.Close()
		log.Debug("workspace created", "path", args[0])

		notes, err := ws.ListAllNotes()
		if err != nil {
			fatal(err)
		}
		if jsonOutput {
			outputJSON(notes)
			return nil
		}
		fmt.Printf("created workspace at %s\n", args[0])
		if len(notes) == 1 {
			fmt.Printf("root note: %s %q\n", notes[0].ID, notes[0].Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
