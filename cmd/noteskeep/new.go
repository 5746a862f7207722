package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/untoldecay/noteskeep/internal/core"
)

var newAsSibling bool

var newCmd = &cobra.Command{
	Use:   "new <selected-id> <node-type>",
	Short: "Create a new note as a child (or sibling) of the selected note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(func(ws *core.Workspace) error {
			position := core.AsChild
			if newAsSibling {
				position = core.AsSibling
			}
			id, err := ws.CreateNote(args[0], position, args[1])
			if err != nil {
				fatal(err)
			}
			log.Debug("note created", "id", id, "nodeType", args[1], "selected", args[0], "sibling", newAsSibling)
			if jsonOutput {
				outputJSON(map[string]string{"id": id})
				return nil
			}
			fmt.Println(id)
			return nil
		})
	},
}

func init() {
	newCmd.Flags().BoolVar(&newAsSibling, "sibling", false, "insert as a sibling of the selected note instead of a child")
	rootCmd.AddCommand(newCmd)
}
