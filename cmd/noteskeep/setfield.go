package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/untoldecay/noteskeep/internal/core"
)

var setFieldCmd = &cobra.Command{
	Use:   "set-field <id> <field> <value>",
	Short: "Set a field on a note, running its schema's on_save hook",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(func(ws *core.Workspace) error {
			id, field, raw := args[0], args[1], args[2]

			note, err := ws.GetNote(id)
			if err != nil {
				fatal(err)
			}
			current, ok := note.Fields[field]
			if !ok {
				// Field not yet present on this note (e.g. a schema added
				// after the note was created): default to text.
				current = core.NewText("")
			}

			value, err := parseFieldValue(current, raw)
			if err != nil {
				return err
			}

			if err := ws.UpdateField(id, field, value); err != nil {
				fatal(err)
			}
			log.Debug("field updated", "id", id, "field", field)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(setFieldCmd)
}

func parseFieldValue(current core.FieldValue, raw string) (core.FieldValue, error) {
	switch current.Kind {
	case core.FieldNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return core.FieldValue{}, fmt.Errorf("value %q is not a number", raw)
		}
		return core.NewNumber(n), nil
	case core.FieldBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return core.FieldValue{}, fmt.Errorf("value %q is not a boolean", raw)
		}
		return core.NewBoolean(b), nil
	case core.FieldDate:
		if raw == "" {
			return core.NewDate(nil), nil
		}
		d := raw
		return core.NewDate(&d), nil
	case core.FieldEmail:
		return core.NewEmail(raw), nil
	default:
		return core.NewText(raw), nil
	}
}
