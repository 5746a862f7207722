package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func TestCreateAndOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.db")

	store, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reopened.Close()
}

func TestCreateRejectsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.db")
	store, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	store.Close()

	if _, err := Create(path); err == nil {
		t.Fatal("expected Create to fail against an existing file")
	}
}

func TestNoteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.db")
	store, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer store.Close()

	row := NoteRow{
		ID: "note-1", Title: "Hello", NodeType: "TextNote",
		Position: 0, CreatedAt: 100, ModifiedAt: 100,
		FieldsJSON: `{}`, IsExpanded: true,
	}
	err = store.WithTx(context.Background(), func(tx *sql.Tx) error {
		return InsertNote(tx, row)
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := GetNote(store.DB(), "note-1")
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got.Title != "Hello" {
		t.Errorf("Title = %q, want %q", got.Title, "Hello")
	}
	if got.ParentID != nil {
		t.Errorf("ParentID = %v, want nil", got.ParentID)
	}
}

func TestOperationPurgeLocalOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.db")
	store, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer store.Close()

	strategy := LocalOnlyStrategy(3)
	for i := 0; i < 10; i++ {
		err := store.WithTx(context.Background(), func(tx *sql.Tx) error {
			if err := AppendOperation(tx, sprintID(i), int64(i), "device-1", "CreateNote", "{}"); err != nil {
				return err
			}
			return Purge(tx, strategy, int64(i))
		})
		if err != nil {
			t.Fatalf("append+purge %d: %v", i, err)
		}
	}

	count, err := CountOperations(store.DB())
	if err != nil {
		t.Fatalf("CountOperations: %v", err)
	}
	if count != 3 {
		t.Errorf("operation count = %d, want 3", count)
	}
}

func sprintID(i int) string {
	return "op-" + string(rune('a'+i))
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.db")
	store, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := runMigrations(store.DB()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := runMigrations(store.DB()); err != nil {
		t.Fatalf("second run should be a no-op: %v", err)
	}
	store.Close()
}
