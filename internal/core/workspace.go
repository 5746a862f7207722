package core

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/untoldecay/noteskeep/internal/scripting"
	"github.com/untoldecay/noteskeep/internal/storage/sqlite"
)

// AddPosition selects where a newly created note lands relative to
// the selected note.
type AddPosition int

const (
	// AsChild places the new note under the selected note at position 0.
	// Existing children keep their positions, so one already at 0 ties
	// with it and the tie is ordered by id.
	AsChild AddPosition = iota
	// AsSibling places the new note under the selected note's parent at
	// the selected note's position + 1. Later siblings are not shifted.
	AsSibling
)

const metaKeyDeviceID = "device_id"
const metaKeyCurrentUser = "current_user_id"

// Workspace is the sole mutation gateway: it owns the store, the
// operation log purge policy, the schema/hook registry, and the
// device id. Every note-tree mutation (CreateNote, UpdateNoteTitle,
// UpdateField, MoveNote, DeleteNote) runs inside one transaction that
// also appends its operation records. LoadUserScript and Import write
// rows without appending operation records.
type Workspace struct {
	store    *sqlite.Store
	registry *scripting.Registry
	purge    sqlite.PurgeStrategy
	deviceID string
	userID   int64
	lock     *flock.Flock
	lockPath string

	clock func() int64
	newID func() string
}

// Option configures a Workspace at creation or open time.
type Option func(*Workspace)

// WithPurgeStrategy overrides the default LocalOnly{keep_last: 5000}
// operation log policy.
func WithPurgeStrategy(strategy sqlite.PurgeStrategy) Option {
	return func(w *Workspace) { w.purge = strategy }
}

func defaultWorkspace() *Workspace {
	return &Workspace{
		purge: sqlite.LocalOnlyStrategy(5000),
		clock: func() int64 { return time.Now().Unix() },
		newID: uuid.NewString,
	}
}

// CreateWorkspace creates a new workspace file at path: a fresh
// database, a derived device id, and an auto-generated root note
// titled after the humanized filename.
func CreateWorkspace(path string, opts ...Option) (*Workspace, error) {
	w := defaultWorkspace()
	for _, opt := range opts {
		opt(w)
	}

	lock, err := acquireLock(path)
	if err != nil {
		return nil, err
	}
	w.lock = lock
	w.lockPath = path

	store, err := sqlite.Create(path)
	if err != nil {
		_ = lock.Unlock()
		return nil, errDatabase("create workspace", err)
	}
	w.store = store

	deviceID, err := DeriveDeviceID()
	if err != nil {
		w.Close()
		return nil, err
	}
	w.deviceID = deviceID

	registry, err := scripting.New()
	if err != nil {
		w.Close()
		return nil, errScriptingWrap("load system scripts", err)
	}
	w.registry = registry

	rootTitle := humanize(baseNameWithoutExt(path))
	rootID := w.newID()
	now := w.clock()

	err = w.store.WithTx(context.Background(), func(tx *sql.Tx) error {
		if err := sqlite.SetMeta(tx, metaKeyDeviceID, deviceID); err != nil {
			return err
		}
		if err := sqlite.SetMeta(tx, metaKeyCurrentUser, fmt.Sprintf("%d", w.userID)); err != nil {
			return err
		}
		row := sqlite.NoteRow{
			ID: rootID, Title: rootTitle, NodeType: "TextNote",
			ParentID: nil, Position: 0,
			CreatedAt: now, ModifiedAt: now,
			CreatedBy: w.userID, ModifiedBy: w.userID,
			FieldsJSON: "{}", IsExpanded: true,
		}
		return sqlite.InsertNote(tx, row)
	})
	if err != nil {
		w.Close()
		return nil, errDatabase("initialize workspace", err)
	}

	return w, nil
}

// OpenWorkspace opens an existing workspace file, failing with
// InvalidWorkspace if the required tables are absent.
func OpenWorkspace(path string, opts ...Option) (*Workspace, error) {
	w := defaultWorkspace()
	for _, opt := range opts {
		opt(w)
	}

	lock, err := acquireLock(path)
	if err != nil {
		return nil, err
	}
	w.lock = lock
	w.lockPath = path

	store, err := sqlite.Open(path)
	if err != nil {
		_ = lock.Unlock()
		return nil, errInvalidWorkspace("open workspace", err)
	}
	w.store = store

	deviceID, err := sqlite.GetMeta(store.DB(), metaKeyDeviceID)
	if err != nil {
		w.Close()
		return nil, errInvalidWorkspace("missing device id", err)
	}
	w.deviceID = deviceID

	registry, err := scripting.New()
	if err != nil {
		w.Close()
		return nil, errScriptingWrap("load system scripts", err)
	}
	w.registry = registry

	return w, nil
}

func acquireLock(path string) (*flock.Flock, error) {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, errIO("acquire workspace lock", err)
	}
	if !ok {
		return nil, errInvalidWorkspace("workspace is already open in another process", nil)
	}
	return lock, nil
}

// Close releases the workspace file lock and the database connection.
func (w *Workspace) Close() error {
	var err error
	if w.store != nil {
		err = w.store.Close()
	}
	if w.lock != nil {
		_ = w.lock.Unlock()
	}
	return err
}

func (w *Workspace) DeviceID() string { return w.deviceID }

// ListAllNotes returns every note ordered by (parent_id, position),
// ties broken by id.
func (w *Workspace) ListAllNotes() ([]Note, error) {
	rows, err := sqlite.ListAllNotes(w.store.DB())
	if err != nil {
		return nil, errDatabase("list notes", err)
	}
	notes := make([]Note, 0, len(rows))
	for _, row := range rows {
		n, err := rowToNote(row)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}
	return notes, nil
}

// GetNote fetches a single note by id.
func (w *Workspace) GetNote(id string) (*Note, error) {
	row, err := sqlite.GetNote(w.store.DB(), id)
	if err == sql.ErrNoRows {
		return nil, errNoteNotFound(id)
	}
	if err != nil {
		return nil, errDatabase("get note", err)
	}
	return rowToNote(*row)
}

// CreateNote inserts a new note relative to selectedID, applies the
// schema's default field values, and logs a CreateNote operation.
// An empty selectedID creates a new root note.
func (w *Workspace) CreateNote(selectedID string, position AddPosition, nodeType string) (string, error) {
	schema, ok := w.registry.GetSchema(nodeType)
	if !ok {
		return "", errSchemaNotFound(nodeType)
	}

	var parentID *string
	var pos int32

	if selectedID == "" {
		roots, err := sqlite.ListChildren(w.store.DB(), nil)
		if err != nil {
			return "", errDatabase("list roots", err)
		}
		parentID = nil
		pos = int32(len(roots))
	} else {
		selected, err := sqlite.GetNote(w.store.DB(), selectedID)
		if err == sql.ErrNoRows {
			return "", errNoteNotFound(selectedID)
		}
		if err != nil {
			return "", errDatabase("get selected note", err)
		}
		switch position {
		case AsChild:
			parentID = &selected.ID
			pos = 0
		case AsSibling:
			parentID = selected.ParentID
			pos = selected.Position + 1
		}
	}

	defaults := schema.DefaultFields()
	fieldsJSON, err := json.Marshal(defaults)
	if err != nil {
		return "", errJSON("marshal default fields", err)
	}

	id := w.newID()
	now := w.clock()
	opID := w.newID()

	err = w.store.WithTx(context.Background(), func(tx *sql.Tx) error {
		row := sqlite.NoteRow{
			ID: id, Title: "Untitled", NodeType: nodeType,
			ParentID: parentID, Position: pos,
			CreatedAt: now, ModifiedAt: now,
			CreatedBy: w.userID, ModifiedBy: w.userID,
			FieldsJSON: string(fieldsJSON), IsExpanded: true,
		}
		if err := sqlite.InsertNote(tx, row); err != nil {
			return err
		}
		op := NewCreateNoteOp(opID, w.deviceID, id, nodeType, parentID, pos, now)
		return w.appendOp(tx, op)
	})
	if err != nil {
		return "", errDatabase("create note", err)
	}
	return id, nil
}

// UpdateNoteTitle sets a note's title directly, bypassing any
// pre-save hook (hooks only run on UpdateField, per the field-level
// save path).
func (w *Workspace) UpdateNoteTitle(id, title string) error {
	now := w.clock()
	opID := w.newID()

	err := w.store.WithTx(context.Background(), func(tx *sql.Tx) error {
		if err := sqlite.UpdateTitle(tx, id, title, now, w.userID); err != nil {
			if err == sql.ErrNoRows {
				return errNoteNotFound(id)
			}
			return err
		}
		op := NewUpdateFieldOp(opID, w.deviceID, id, "title", NewText(title), now)
		return w.appendOp(tx, op)
	})
	if err != nil {
		if isErrWithKind(err, KindNoteNotFound) {
			return err
		}
		return errDatabase("update title", err)
	}
	return nil
}

// UpdateField sets one field's value, running the schema's pre-save
// hook (if any) before persisting. The appended operation always
// carries the literal input value, never the hook's transformation.
func (w *Workspace) UpdateField(id, name string, value FieldValue) error {
	row, err := sqlite.GetNote(w.store.DB(), id)
	if err == sql.ErrNoRows {
		return errNoteNotFound(id)
	}
	if err != nil {
		return errDatabase("get note", err)
	}

	schema, ok := w.registry.GetSchema(row.NodeType)
	if !ok {
		return errSchemaNotFound(row.NodeType)
	}

	current, err := decodeFields(row.FieldsJSON)
	if err != nil {
		return err
	}
	current[name] = value

	newTitle, newValues, hookRan, err := w.registry.RunHook(schema, id, row.Title, current)
	if err != nil {
		return errScriptingWrap("on_save hook", err)
	}
	if !hookRan {
		newTitle = row.Title
		newValues = current
	}

	fieldsJSON, err := json.Marshal(newValues)
	if err != nil {
		return errJSON("marshal fields", err)
	}

	now := w.clock()
	opID := w.newID()

	err = w.store.WithTx(context.Background(), func(tx *sql.Tx) error {
		if err := sqlite.UpdateFieldsJSON(tx, id, newTitle, string(fieldsJSON), now, w.userID); err != nil {
			return err
		}
		op := NewUpdateFieldOp(opID, w.deviceID, id, name, value, now)
		return w.appendOp(tx, op)
	})
	if err != nil {
		return errDatabase("update field", err)
	}
	return nil
}

// MoveNote reparents a note. Siblings retain their existing
// positions; callers that need a gap must renumber before moving.
func (w *Workspace) MoveNote(id string, newParent *string, newPosition int32) error {
	now := w.clock()
	opID := w.newID()

	err := w.store.WithTx(context.Background(), func(tx *sql.Tx) error {
		if err := sqlite.UpdateParentPosition(tx, id, newParent, newPosition); err != nil {
			if err == sql.ErrNoRows {
				return errNoteNotFound(id)
			}
			return err
		}
		op := NewMoveNoteOp(opID, w.deviceID, id, newParent, newPosition, now)
		return w.appendOp(tx, op)
	})
	if err != nil {
		if isErrWithKind(err, KindNoteNotFound) {
			return err
		}
		return errDatabase("move note", err)
	}
	return nil
}

// DeleteNote removes a note according to strategy, see DeleteAll and
// PromoteChildren.
func (w *Workspace) DeleteNote(id string, strategy DeleteStrategy) (DeleteResult, error) {
	switch strategy {
	case DeleteAll:
		return w.deleteAll(id)
	case PromoteChildren:
		return w.promoteChildren(id)
	default:
		return DeleteResult{}, errValidation(fmt.Sprintf("unknown delete strategy %q", strategy))
	}
}

func (w *Workspace) deleteAll(id string) (DeleteResult, error) {
	if _, err := sqlite.GetNote(w.store.DB(), id); err == sql.ErrNoRows {
		return DeleteResult{}, errNoteNotFound(id)
	} else if err != nil {
		return DeleteResult{}, errDatabase("get note", err)
	}

	subtree, err := w.collectSubtreeLeavesFirst(id)
	if err != nil {
		return DeleteResult{}, err
	}

	now := w.clock()
	err = w.store.WithTx(context.Background(), func(tx *sql.Tx) error {
		for _, noteID := range subtree {
			if err := sqlite.DeleteNoteRow(tx, noteID); err != nil {
				return err
			}
			op := NewDeleteNoteOp(w.newID(), w.deviceID, noteID, now)
			if err := w.appendOp(tx, op); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return DeleteResult{}, errDatabase("delete subtree", err)
	}

	affected := reverse(subtree)
	return DeleteResult{DeletedCount: len(affected), AffectedIDs: affected}, nil
}

// collectSubtreeLeavesFirst walks id's descendants depth-first and
// returns them in leaves-first order with id last, so the log
// replays cleanly (children are deleted before the parent they
// reference).
func (w *Workspace) collectSubtreeLeavesFirst(id string) ([]string, error) {
	var order []string
	var walk func(string) error
	walk = func(nodeID string) error {
		children, err := sqlite.ListChildren(w.store.DB(), &nodeID)
		if err != nil {
			return errDatabase("list children", err)
		}
		for _, c := range children {
			if err := walk(c.ID); err != nil {
				return err
			}
		}
		order = append(order, nodeID)
		return nil
	}
	if err := walk(id); err != nil {
		return nil, err
	}
	return order, nil
}

func reverse(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}

func (w *Workspace) promoteChildren(id string) (DeleteResult, error) {
	target, err := sqlite.GetNote(w.store.DB(), id)
	if err == sql.ErrNoRows {
		return DeleteResult{}, errNoteNotFound(id)
	}
	if err != nil {
		return DeleteResult{}, errDatabase("get note", err)
	}

	children, err := sqlite.ListChildren(w.store.DB(), &target.ID)
	if err != nil {
		return DeleteResult{}, errDatabase("list children", err)
	}
	siblings, err := sqlite.ListChildren(w.store.DB(), target.ParentID)
	if err != nil {
		return DeleteResult{}, errDatabase("list siblings", err)
	}

	delta := int32(len(children)) - 1
	now := w.clock()

	err = w.store.WithTx(context.Background(), func(tx *sql.Tx) error {
		for _, sib := range siblings {
			if sib.ID == target.ID || sib.Position <= target.Position {
				continue
			}
			if err := sqlite.UpdateParentPosition(tx, sib.ID, target.ParentID, sib.Position+delta); err != nil {
				return err
			}
		}

		for i, child := range children {
			newPos := target.Position + int32(i)
			if err := sqlite.UpdateParentPosition(tx, child.ID, target.ParentID, newPos); err != nil {
				return err
			}
			op := NewMoveNoteOp(w.newID(), w.deviceID, child.ID, target.ParentID, newPos, now)
			if err := w.appendOp(tx, op); err != nil {
				return err
			}
		}

		if err := sqlite.DeleteNoteRow(tx, target.ID); err != nil {
			return err
		}
		op := NewDeleteNoteOp(w.newID(), w.deviceID, target.ID, now)
		return w.appendOp(tx, op)
	})
	if err != nil {
		return DeleteResult{}, errDatabase("promote children", err)
	}

	affected := []string{target.ID}
	for _, c := range children {
		affected = append(affected, c.ID)
	}
	return DeleteResult{DeletedCount: 1, AffectedIDs: affected}, nil
}

// LoadUserScript evaluates src in the scripting runtime and persists
// it as a UserScript record.
func (w *Workspace) LoadUserScript(src string) error {
	if err := w.registry.LoadUserScript(src); err != nil {
		return errScriptingWrap("load user script", err)
	}

	fm := parseFrontMatter(src)
	existing, err := sqlite.ListUserScripts(w.store.DB())
	if err != nil {
		return errDatabase("list user scripts", err)
	}
	loadOrder := 0
	for _, s := range existing {
		if s.LoadOrder >= loadOrder {
			loadOrder = s.LoadOrder + 1
		}
	}

	now := w.clock()
	row := sqlite.UserScriptRow{
		ID: w.newID(), Name: fm.Name, Description: fm.Description,
		SourceCode: src, LoadOrder: loadOrder, Enabled: true,
		CreatedAt: now, ModifiedAt: now,
	}
	err = w.store.WithTx(context.Background(), func(tx *sql.Tx) error {
		return sqlite.InsertUserScript(tx, row)
	})
	if err != nil {
		return errDatabase("persist user script", err)
	}
	return nil
}

// ClearUserRegistrations drops user-sourced schemas and hooks from
// the in-memory registry. Persisted UserScript rows are untouched;
// reloading them re-populates the registry.
func (w *Workspace) ClearUserRegistrations() {
	w.registry.ClearUserRegistrations()
}

// insertNoteRow persists a note exactly as given, for import: ids
// and timestamps are preserved rather than regenerated.
func (w *Workspace) insertNoteRow(n Note, fieldsJSON string) error {
	err := w.store.WithTx(context.Background(), func(tx *sql.Tx) error {
		row := sqlite.NoteRow{
			ID: n.ID, Title: n.Title, NodeType: n.NodeType,
			ParentID: n.ParentID, Position: n.Position,
			CreatedAt: n.CreatedAt, ModifiedAt: n.ModifiedAt,
			CreatedBy: n.CreatedBy, ModifiedBy: n.ModifiedBy,
			FieldsJSON: fieldsJSON, IsExpanded: n.IsExpanded,
		}
		return sqlite.InsertNote(tx, row)
	})
	if err != nil {
		return errDatabase("import note", err)
	}
	return nil
}

func sqliteListUserScripts(w *Workspace) ([]sqlite.UserScriptRow, error) {
	rows, err := sqlite.ListUserScripts(w.store.DB())
	if err != nil {
		return nil, errDatabase("list user scripts", err)
	}
	return rows, nil
}

func (w *Workspace) appendOp(tx *sql.Tx, op Operation) error {
	data, err := json.Marshal(op)
	if err != nil {
		return errJSON("marshal operation", err)
	}
	if err := sqlite.AppendOperation(tx, op.OperationID, op.Timestamp, op.DeviceID, string(op.Kind), string(data)); err != nil {
		return err
	}
	return sqlite.Purge(tx, w.purge, op.Timestamp)
}

func rowToNote(row sqlite.NoteRow) (*Note, error) {
	values, err := decodeFields(row.FieldsJSON)
	if err != nil {
		return nil, err
	}
	return &Note{
		ID: row.ID, Title: row.Title, NodeType: row.NodeType,
		ParentID: row.ParentID, Position: row.Position,
		CreatedAt: row.CreatedAt, ModifiedAt: row.ModifiedAt,
		CreatedBy: row.CreatedBy, ModifiedBy: row.ModifiedBy,
		Fields: values, IsExpanded: row.IsExpanded,
	}, nil
}

func decodeFields(raw string) (map[string]FieldValue, error) {
	values := make(map[string]FieldValue)
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, errJSON("decode note fields", err)
	}
	return values, nil
}

func isErrWithKind(err error, kind Kind) bool {
	var e *Error
	if ok := asError(err, &e); ok {
		return e.Kind == kind
	}
	return false
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// humanize turns a filename stem into a readable root-note title:
// '-'/'_' become spaces and each word is title-cased.
func humanize(stem string) string {
	replaced := strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	words := strings.Fields(replaced)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	if len(words) == 0 {
		return "Untitled"
	}
	return strings.Join(words, " ")
}

func baseNameWithoutExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
