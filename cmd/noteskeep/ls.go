package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/untoldecay/noteskeep/internal/core"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List every note in the workspace as an indented tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(func(ws *core.Workspace) error {
			notes, err := ws.ListAllNotes()
			if err != nil {
				fatal(err)
			}
			if jsonOutput {
				outputJSON(notes)
				return nil
			}
			printTree(notes)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func printTree(notes []core.Note) {
	children := map[string][]core.Note{}
	var roots []core.Note
	for _, n := range notes {
		if n.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		children[*n.ParentID] = append(children[*n.ParentID], n)
	}
	for _, siblings := range children {
		sort.Slice(siblings, func(i, j int) bool { return siblings[i].Position < siblings[j].Position })
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].Position < roots[j].Position })

	var walk func(n core.Note, depth int)
	walk = func(n core.Note, depth int) {
		fmt.Printf("%s%s %s [%s]\n", strings.Repeat("  ", depth), n.ID, n.Title, n.NodeType)
		for _, c := range children[n.ID] {
			walk(c, depth+1)
		}
	}
	for _, r := range roots {
		walk(r, 0)
	}
}
