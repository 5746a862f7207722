package noteskeep

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

func TestCreateOpenRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lib-test.db")

	ws, err := CreateWorkspace(dbPath)
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}
	notes, err := ws.ListAllNotes()
	if err != nil {
		t.Fatalf("ListAllNotes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 root note after create, got %d", len(notes))
	}
	root := notes[0]
	if err := ws.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	ws2, err := OpenWorkspace(dbPath)
	if err != nil {
		t.Fatalf("OpenWorkspace: %v", err)
	}
	defer ws2.Close()

	id, err := ws2.CreateNote(root.ID, AsChild, "TextNote")
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if err := ws2.UpdateField(id, "body", NewText("hello from the facade")); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}

	var buf bytes.Buffer
	if err := Export(ws2, &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected non-empty export archive")
	}
}

func TestErrKindMatching(t *testing.T) {
	_, err := OpenWorkspace(filepath.Join(t.TempDir(), "does-not-exist.db"))
	if err == nil {
		t.Fatal("expected error opening a missing workspace")
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected err to be *noteskeep.Error, got %T", err)
	}
	if !errors.Is(err, Err(KindInvalidWorkspace)) {
		t.Errorf("expected Kind %v, got %v", KindInvalidWorkspace, e.Kind)
	}
}
