package core

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/untoldecay/noteskeep/internal/storage/sqlite"
)

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ws.db")
	w, err := CreateWorkspace(path)
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w
}

func TestCreateWorkspaceInsertsRoot(t *testing.T) {
	w := newTestWorkspace(t)
	notes, err := w.ListAllNotes()
	if err != nil {
		t.Fatalf("ListAllNotes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 root note, got %d", len(notes))
	}
	if notes[0].ParentID != nil {
		t.Error("root note should have no parent")
	}
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"my-notes":    "My Notes",
		"my_notes":    "My Notes",
		"plainword":   "Plainword",
		"a-b_c":       "A B C",
	}
	for in, want := range cases {
		if got := humanize(in); got != want {
			t.Errorf("humanize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCreateNoteRoundTrip(t *testing.T) {
	w := newTestWorkspace(t)
	roots, _ := w.ListAllNotes()
	rootID := roots[0].ID

	id, err := w.CreateNote(rootID, AsChild, "TextNote")
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	note, err := w.GetNote(id)
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if note.Title != "Untitled" {
		t.Errorf("Title = %q, want Untitled", note.Title)
	}
	if note.ParentID == nil || *note.ParentID != rootID {
		t.Errorf("ParentID = %v, want %s", note.ParentID, rootID)
	}
	body, ok := note.Fields["body"]
	if !ok || body.Kind != FieldText || body.TextVal != "" {
		t.Errorf("body field = %+v, want empty text", body)
	}
}

func TestCreateNoteUnknownSchema(t *testing.T) {
	w := newTestWorkspace(t)
	if _, err := w.CreateNote("", AsChild, "NoSuchType"); err == nil {
		t.Fatal("expected SchemaNotFound error")
	}
}

func TestUpdateFieldAppliesHookTitle(t *testing.T) {
	w := newTestWorkspace(t)
	id, err := w.CreateNote("", AsChild, "Contact")
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	if err := w.UpdateField(id, "first", NewText("John")); err != nil {
		t.Fatalf("UpdateField(first): %v", err)
	}
	if err := w.UpdateField(id, "last", NewText("Doe")); err != nil {
		t.Fatalf("UpdateField(last): %v", err)
	}

	note, err := w.GetNote(id)
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if note.Title != "Doe, John" {
		t.Errorf("Title = %q, want %q", note.Title, "Doe, John")
	}
}

func TestDeleteAllRemovesSubtree(t *testing.T) {
	w := newTestWorkspace(t)
	roots, _ := w.ListAllNotes()
	rootID := roots[0].ID

	parent, err := w.CreateNote(rootID, AsChild, "TextNote")
	if err != nil {
		t.Fatal(err)
	}
	child1, err := w.CreateNote(parent, AsChild, "TextNote")
	if err != nil {
		t.Fatal(err)
	}
	child2, err := w.CreateNote(child1, AsSibling, "TextNote")
	if err != nil {
		t.Fatal(err)
	}

	result, err := w.DeleteNote(parent, DeleteAll)
	if err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if result.DeletedCount != 3 {
		t.Errorf("DeletedCount = %d, want 3", result.DeletedCount)
	}
	for _, id := range []string{parent, child1, child2} {
		if _, err := w.GetNote(id); err == nil {
			t.Errorf("expected %s to be deleted", id)
		}
	}
}

func TestPromoteChildrenPreservesOrder(t *testing.T) {
	w := newTestWorkspace(t)
	roots, _ := w.ListAllNotes()
	rootID := roots[0].ID

	target, err := w.CreateNote(rootID, AsChild, "TextNote")
	if err != nil {
		t.Fatal(err)
	}
	c1, err := w.CreateNote(target, AsChild, "TextNote")
	if err != nil {
		t.Fatal(err)
	}
	c2, err := w.CreateNote(c1, AsSibling, "TextNote")
	if err != nil {
		t.Fatal(err)
	}
	afterSibling, err := w.CreateNote(target, AsSibling, "TextNote")
	if err != nil {
		t.Fatal(err)
	}

	result, err := w.DeleteNote(target, PromoteChildren)
	if err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if result.DeletedCount != 1 {
		t.Errorf("DeletedCount = %d, want 1", result.DeletedCount)
	}

	n1, err := w.GetNote(c1)
	if err != nil {
		t.Fatalf("GetNote(c1): %v", err)
	}
	n2, err := w.GetNote(c2)
	if err != nil {
		t.Fatalf("GetNote(c2): %v", err)
	}
	if n1.ParentID == nil || *n1.ParentID != rootID {
		t.Errorf("c1 ParentID = %v, want %s", n1.ParentID, rootID)
	}
	if n1.Position >= n2.Position {
		t.Errorf("expected c1 (%d) before c2 (%d)", n1.Position, n2.Position)
	}

	after, err := w.GetNote(afterSibling)
	if err != nil {
		t.Fatalf("GetNote(afterSibling): %v", err)
	}
	if after.Position != n2.Position+1 {
		t.Errorf("afterSibling.Position = %d, want %d", after.Position, n2.Position+1)
	}
}

func TestOperationLogBoundLocalOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.db")
	w, err := CreateWorkspace(path, WithPurgeStrategy(sqlite.LocalOnlyStrategy(3)))
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}
	defer w.Close()

	for i := 0; i < 10; i++ {
		if _, err := w.CreateNote("", AsChild, "TextNote"); err != nil {
			t.Fatalf("CreateNote %d: %v", i, err)
		}
	}

	count, err := sqlite.CountOperations(storeOf(w).DB())
	if err != nil {
		t.Fatalf("CountOperations: %v", err)
	}
	if count != 3 {
		t.Errorf("operation count = %d, want 3", count)
	}
}

func storeOf(w *Workspace) *sqlite.Store { return w.store }

func TestExportImportRoundTrip(t *testing.T) {
	srcPath := filepath.Join(t.TempDir(), "src.db")
	src, err := CreateWorkspace(srcPath)
	if err != nil {
		t.Fatalf("CreateWorkspace: %v", err)
	}
	defer src.Close()

	id, err := src.CreateNote("", AsChild, "Contact")
	if err != nil {
		t.Fatal(err)
	}
	if err := src.UpdateField(id, "first", NewText("Ada")); err != nil {
		t.Fatal(err)
	}
	if err := src.LoadUserScript("// @name: Extra\nschema(\"Extra\", { fields: [] });"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := src.Export(&buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	dstPath := filepath.Join(t.TempDir(), "dst.db")
	dst, err := CreateWorkspace(dstPath)
	if err != nil {
		t.Fatalf("CreateWorkspace (dst): %v", err)
	}
	defer dst.Close()

	result, err := dst.Import(&buf)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.ScriptCount != 1 {
		t.Errorf("ScriptCount = %d, want 1", result.ScriptCount)
	}

	imported, err := dst.GetNote(id)
	if err != nil {
		t.Fatalf("GetNote after import: %v", err)
	}
	if imported.Fields["first"].TextVal != "Ada" {
		t.Errorf("imported first field = %q, want Ada", imported.Fields["first"].TextVal)
	}
}
