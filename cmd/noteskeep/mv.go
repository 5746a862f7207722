package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/untoldecay/noteskeep/internal/core"
)

var mvCmd = &cobra.Command{
	Use:   "mv <id> <new-parent|-> <position>",
	Short: "Move a note to a new parent and position; use - for new-parent to make it a root note",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		position, err := strconv.ParseInt(args[2], 10, 32)
		if err != nil {
			return err
		}
		return withWorkspace(func(ws *core.Workspace) error {
			var newParent *string
			if args[1] != "-" {
				p := args[1]
				newParent = &p
			}
			if err := ws.MoveNote(args[0], newParent, int32(position)); err != nil {
				fatal(err)
			}
			log.Debug("note moved", "id", args[0], "newParent", args[1], "position", position)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(mvCmd)
}
