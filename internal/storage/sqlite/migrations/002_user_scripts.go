package migrations

import (
	"database/sql"
	"fmt"
)

// CreateUserScripts creates the user_scripts table for workspaces
// created before scripting support existed.
func CreateUserScripts(tx *sql.Tx) error {
	_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS user_scripts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	source_code TEXT NOT NULL,
	load_order INTEGER NOT NULL,
	enabled INTEGER NOT NULL DEFAULT 1,
	created_at INTEGER NOT NULL,
	modified_at INTEGER NOT NULL
);
`)
	if err != nil {
		return fmt.Errorf("create user_scripts table: %w", err)
	}
	return nil
}
