package sqlite

import (
	"database/sql"
	"fmt"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, letting read helpers
// run against either a transaction or the bare connection.
type DBTX interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
}

// NoteRow is the notes table's column set, with FieldValue encoding
// left to the caller (fields_json travels as a raw string so this
// package has no dependency on the field-value type).
type NoteRow struct {
	ID         string
	Title      string
	NodeType   string
	ParentID   *string
	Position   int32
	CreatedAt  int64
	ModifiedAt int64
	CreatedBy  int64
	ModifiedBy int64
	FieldsJSON string
	IsExpanded bool
}

func InsertNote(tx *sql.Tx, n NoteRow) error {
	_, err := tx.Exec(`
INSERT INTO notes (id, title, node_type, parent_id, position, created_at, modified_at, created_by, modified_by, fields_json, is_expanded)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.NodeType, n.ParentID, n.Position, n.CreatedAt, n.ModifiedAt, n.CreatedBy, n.ModifiedBy, n.FieldsJSON, boolToInt(n.IsExpanded))
	if err != nil {
		return fmt.Errorf("insert note %s: %w", n.ID, err)
	}
	return nil
}

func GetNote(db DBTX, id string) (*NoteRow, error) {
	row := db.QueryRow(`
SELECT id, title, node_type, parent_id, position, created_at, modified_at, created_by, modified_by, fields_json, is_expanded
FROM notes WHERE id = ?`, id)
	return scanNote(row)
}

func ListAllNotes(db DBTX) ([]NoteRow, error) {
	rows, err := db.Query(`
SELECT id, title, node_type, parent_id, position, created_at, modified_at, created_by, modified_by, fields_json, is_expanded
FROM notes ORDER BY parent_id IS NOT NULL, parent_id, position, id`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()
	return scanNotes(rows)
}

func ListChildren(db DBTX, parentID *string) ([]NoteRow, error) {
	var rows *sql.Rows
	var err error
	if parentID == nil {
		rows, err = db.Query(`
SELECT id, title, node_type, parent_id, position, created_at, modified_at, created_by, modified_by, fields_json, is_expanded
FROM notes WHERE parent_id IS NULL ORDER BY position, id`)
	} else {
		rows, err = db.Query(`
SELECT id, title, node_type, parent_id, position, created_at, modified_at, created_by, modified_by, fields_json, is_expanded
FROM notes WHERE parent_id = ? ORDER BY position, id`, *parentID)
	}
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()
	return scanNotes(rows)
}

func UpdateTitle(tx *sql.Tx, id, title string, modifiedAt, modifiedBy int64) error {
	res, err := tx.Exec(`UPDATE notes SET title = ?, modified_at = ?, modified_by = ? WHERE id = ?`, title, modifiedAt, modifiedBy, id)
	if err != nil {
		return fmt.Errorf("update title of %s: %w", id, err)
	}
	return requireRowAffected(res, id)
}

func UpdateFieldsJSON(tx *sql.Tx, id, title, fieldsJSON string, modifiedAt, modifiedBy int64) error {
	res, err := tx.Exec(`UPDATE notes SET title = ?, fields_json = ?, modified_at = ?, modified_by = ? WHERE id = ?`,
		title, fieldsJSON, modifiedAt, modifiedBy, id)
	if err != nil {
		return fmt.Errorf("update fields of %s: %w", id, err)
	}
	return requireRowAffected(res, id)
}

func UpdateParentPosition(tx *sql.Tx, id string, parentID *string, position int32) error {
	res, err := tx.Exec(`UPDATE notes SET parent_id = ?, position = ? WHERE id = ?`, parentID, position, id)
	if err != nil {
		return fmt.Errorf("move %s: %w", id, err)
	}
	return requireRowAffected(res, id)
}

func DeleteNoteRow(tx *sql.Tx, id string) error {
	res, err := tx.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	return requireRowAffected(res, id)
}

func scanNote(row *sql.Row) (*NoteRow, error) {
	var n NoteRow
	var parentID sql.NullString
	var isExpanded int
	if err := row.Scan(&n.ID, &n.Title, &n.NodeType, &parentID, &n.Position, &n.CreatedAt, &n.ModifiedAt, &n.CreatedBy, &n.ModifiedBy, &n.FieldsJSON, &isExpanded); err != nil {
		return nil, err
	}
	if parentID.Valid {
		n.ParentID = &parentID.String
	}
	n.IsExpanded = isExpanded != 0
	return &n, nil
}

func scanNotes(rows *sql.Rows) ([]NoteRow, error) {
	var out []NoteRow
	for rows.Next() {
		var n NoteRow
		var parentID sql.NullString
		var isExpanded int
		if err := rows.Scan(&n.ID, &n.Title, &n.NodeType, &parentID, &n.Position, &n.CreatedAt, &n.ModifiedAt, &n.CreatedBy, &n.ModifiedBy, &n.FieldsJSON, &isExpanded); err != nil {
			return nil, err
		}
		if parentID.Valid {
			n.ParentID = &parentID.String
		}
		n.IsExpanded = isExpanded != 0
		out = append(out, n)
	}
	return out, rows.Err()
}

func requireRowAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s: %w", id, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
