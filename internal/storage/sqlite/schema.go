// Package sqlite is the persistent store: an embedded single-file
// SQLite database holding the note tree, the operation log, workspace
// metadata, and user scripts.
package sqlite

// schema is the DDL applied when creating a brand new workspace file.
// Column set matches the persisted state layout: notes, operations,
// workspace_meta, user_scripts.
const schema = `
CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	node_type TEXT NOT NULL,
	parent_id TEXT,
	position INTEGER NOT NULL,
	created_at INTEGER NOT NULL,
	modified_at INTEGER NOT NULL,
	created_by INTEGER NOT NULL,
	modified_by INTEGER NOT NULL,
	fields_json TEXT NOT NULL,
	is_expanded INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_notes_parent_position ON notes(parent_id, position);

CREATE TABLE IF NOT EXISTS operations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	operation_id TEXT NOT NULL UNIQUE,
	timestamp INTEGER NOT NULL,
	device_id TEXT NOT NULL,
	operation_type TEXT NOT NULL,
	operation_data TEXT NOT NULL,
	synced INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_operations_synced_timestamp ON operations(synced, timestamp);

CREATE TABLE IF NOT EXISTS workspace_meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

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
`

// requiredTables is checked on open; missing any of these means the
// file is not a valid workspace.
var requiredTables = []string{"notes", "operations", "workspace_meta"}
