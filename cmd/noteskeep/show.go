package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/untoldecay/noteskeep/internal/core"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a note and its fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(func(ws *core.Workspace) error {
			note, err := ws.GetNote(args[0])
			if err != nil {
				fatal(err)
			}
			if jsonOutput {
				outputJSON(note)
				return nil
			}
			fmt.Printf("%s %q [%s]\n", note.ID, note.Title, note.NodeType)
			names := make([]string, 0, len(note.Fields))
			for name := range note.Fields {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("  %s: %s\n", name, displayFieldValue(note.Fields[name]))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func displayFieldValue(v core.FieldValue) string {
	switch v.Kind {
	case core.FieldText:
		return v.TextVal
	case core.FieldNumber:
		return fmt.Sprintf("%g", v.NumberVal)
	case core.FieldBoolean:
		return fmt.Sprintf("%t", v.BooleanVal)
	case core.FieldEmail:
		return v.EmailVal
	case core.FieldDate:
		if v.DateVal == nil {
			return "(unset)"
		}
		return *v.DateVal
	default:
		return ""
	}
}
