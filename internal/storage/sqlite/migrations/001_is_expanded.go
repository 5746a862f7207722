// Package migrations holds one file per additive schema change
// applied to an existing workspace database, in the style of the
// per-migration-file layout used for the larger host project's own
// SQLite store.
package migrations

import (
	"database/sql"
	"fmt"
)

// AddNotesIsExpanded adds the notes.is_expanded column (default 1)
// to databases created before the column existed. Safe to run
// against a database that already has it.
func AddNotesIsExpanded(tx *sql.Tx) error {
	has, err := columnExists(tx, "notes", "is_expanded")
	if err != nil {
		return fmt.Errorf("check notes.is_expanded: %w", err)
	}
	if has {
		return nil
	}
	if _, err := tx.Exec(`ALTER TABLE notes ADD COLUMN is_expanded INTEGER NOT NULL DEFAULT 1`); err != nil {
		return fmt.Errorf("add notes.is_expanded: %w", err)
	}
	return nil
}

func columnExists(tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.Query(fmt.Sprintf(`PRAGMA table_info(%s)`, table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
