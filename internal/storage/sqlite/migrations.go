package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/untoldecay/noteskeep/internal/storage/sqlite/migrations"
)

// Migration is one additive, idempotent schema change. Order matters:
// migrations run in slice order inside a single transaction.
type Migration struct {
	Name string
	Func func(*sql.Tx) error
}

var migrationsList = []Migration{
	{Name: "add notes.is_expanded", Func: migrations.AddNotesIsExpanded},
	{Name: "create user_scripts", Func: migrations.CreateUserScripts},
}

// runMigrations applies every migration in order inside one
// transaction. Migrations are idempotent: running them against an
// already-migrated database is a no-op beyond the existence checks
// each migration performs itself.
func runMigrations(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, m := range migrationsList {
		if err := m.Func(tx); err != nil {
			return fmt.Errorf("migration %q: %w", m.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}
	committed = true
	return nil
}
