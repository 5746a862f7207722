package main

import (
	"github.com/spf13/cobra"

	"github.com/untoldecay/noteskeep/internal/core"
)

var setTitleCmd = &cobra.Command{
	Use:   "set-title <id> <title>",
	Short: "Set a note's title",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(func(ws *core.Workspace) error {
			if err := ws.UpdateNoteTitle(args[0], args[1]); err != nil {
				fatal(err)
			}
			log.Debug("note title updated", "id", args[0], "title", args[1])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(setTitleCmd)
}
