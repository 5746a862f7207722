package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/untoldecay/noteskeep/internal/core"
)

var exportCmd = &cobra.Command{
	Use:   "export <archive.zip>",
	Short: "Export all notes and user scripts to a zip archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(func(ws *core.Workspace) error {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[0], err)
			}
			defer f.Close()
			if err := ws.Export(f); err != nil {
				fatal(err)
			}
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <archive.zip>",
	Short: "Import notes and user scripts from a zip archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(func(ws *core.Workspace) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()
			result, err := ws.Import(f)
			if err != nil {
				fatal(err)
			}
			log.Debug("archive imported", "file", args[0], "notes", result.NoteCount, "scripts", result.ScriptCount)
			if jsonOutput {
				outputJSON(result)
				return nil
			}
			fmt.Printf("imported %d notes, %d scripts\n", result.NoteCount, result.ScriptCount)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
