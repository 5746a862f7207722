package sqlite

import (
	"database/sql"
	"fmt"
)

type UserScriptRow struct {
	ID          string
	Name        string
	Description string
	SourceCode  string
	LoadOrder   int
	Enabled     bool
	CreatedAt   int64
	ModifiedAt  int64
}

func InsertUserScript(tx *sql.Tx, s UserScriptRow) error {
	_, err := tx.Exec(`
INSERT INTO user_scripts (id, name, description, source_code, load_order, enabled, created_at, modified_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.Description, s.SourceCode, s.LoadOrder, boolToInt(s.Enabled), s.CreatedAt, s.ModifiedAt)
	if err != nil {
		return fmt.Errorf("insert user script %s: %w", s.ID, err)
	}
	return nil
}

func ListUserScripts(db DBTX) ([]UserScriptRow, error) {
	rows, err := db.Query(`
SELECT id, name, description, source_code, load_order, enabled, created_at, modified_at
FROM user_scripts ORDER BY load_order, id`)
	if err != nil {
		return nil, fmt.Errorf("list user scripts: %w", err)
	}
	defer rows.Close()

	var out []UserScriptRow
	for rows.Next() {
		var s UserScriptRow
		var enabled int
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.SourceCode, &s.LoadOrder, &enabled, &s.CreatedAt, &s.ModifiedAt); err != nil {
			return nil, err
		}
		s.Enabled = enabled != 0
		out = append(out, s)
	}
	return out, rows.Err()
}
