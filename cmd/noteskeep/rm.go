package main

import (
	"github.com/spf13/cobra"

	"github.com/untoldecay/noteskeep/internal/core"
)

var rmPromoteChildren bool

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a note and its subtree (or promote its children in its place)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(func(ws *core.Workspace) error {
			strategy := core.DeleteAll
			if rmPromoteChildren {
				strategy = core.PromoteChildren
			}
			result, err := ws.DeleteNote(args[0], strategy)
			if err != nil {
				fatal(err)
			}
			log.Debug("note deleted", "id", args[0], "promoteChildren", rmPromoteChildren)
			if jsonOutput {
				outputJSON(result)
			}
			return nil
		})
	},
}

func init() {
	rmCmd.Flags().BoolVar(&rmPromoteChildren, "promote-children", false, "reparent children to the deleted note's parent instead of deleting the whole subtree")
	rootCmd.AddCommand(rmCmd)
}
