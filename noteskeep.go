// Package noteskeep provides a minimal public API for embedding
// noteskeep's hierarchical note store in other Go programs.
//
// Most callers should use Workspace directly; this package exports only
// the surface needed to open a workspace, walk its notes, and mutate
// them without reaching into internal/.
package noteskeep

import (
	"io"

	"github.com/untoldecay/noteskeep/internal/core"
	"github.com/untoldecay/noteskeep/internal/storage/sqlite"
)

// Workspace is an open noteskeep workspace: a SQLite-backed note tree
// plus its schema/hook scripting registry.
type Workspace = core.Workspace

// Note is a single node in the workspace's note tree.
type Note = core.Note

// FieldValue is a typed schema field value (text, number, boolean, date,
// or email).
type FieldValue = core.FieldValue

// Operation is one entry in a workspace's append-only operation log.
type Operation = core.Operation

// AddPosition selects where CreateNote inserts a new note relative to
// the selected note.
type AddPosition = core.AddPosition

const (
	AsChild   = core.AsChild
	AsSibling = core.AsSibling
)

// DeleteStrategy selects how DeleteNote handles a note's children.
type DeleteStrategy = core.DeleteStrategy

const (
	DeleteAll       = core.DeleteAll
	PromoteChildren = core.PromoteChildren
)

// DeleteResult reports what a DeleteNote call actually removed.
type DeleteResult = core.DeleteResult

// ImportResult reports what an Import call loaded.
type ImportResult = core.ImportResult

// Option configures workspace construction.
type Option = core.Option

// WithPurgeStrategy overrides the operation log purge strategy used by a
// new or opened workspace.
func WithPurgeStrategy(strategy PurgeStrategy) Option {
	return core.WithPurgeStrategy(strategy)
}

// PurgeStrategy controls how a workspace prunes its operation log.
type PurgeStrategy = sqlite.PurgeStrategy

// LocalOnlyStrategy keeps only the most recent keepLast operations.
func LocalOnlyStrategy(keepLast int) PurgeStrategy { return sqlite.LocalOnlyStrategy(keepLast) }

// WithSyncStrategy keeps synced operations for retentionDays and all
// unsynced operations regardless of age.
func WithSyncStrategy(retentionDays int) PurgeStrategy { return sqlite.WithSyncStrategy(retentionDays) }

// CreateWorkspace initializes a new workspace database at path,
// populating it with an auto-generated root note.
func CreateWorkspace(path string, opts ...Option) (*Workspace, error) {
	return core.CreateWorkspace(path, opts...)
}

// OpenWorkspace opens an existing workspace database at path.
func OpenWorkspace(path string, opts ...Option) (*Workspace, error) {
	return core.OpenWorkspace(path, opts...)
}

// FieldValue constructors.
var (
	NewText    = core.NewText
	NewNumber  = core.NewNumber
	NewBoolean = core.NewBoolean
	NewEmail   = core.NewEmail
	NewDate    = core.NewDate
)

// Export writes a workspace's notes and user scripts to dst as a zip
// archive in noteskeep's portable exchange format.
func Export(w *Workspace, dst io.Writer) error {
	return w.Export(dst)
}

// Import loads notes and user scripts from a zip archive produced by
// Export into w.
func Import(w *Workspace, src io.Reader) (ImportResult, error) {
	return w.Import(src)
}

// Error is noteskeep's single error type; inspect it with errors.As or
// compare its Kind with errors.Is(err, Err(kind)).
type Error = core.Error

// Kind classifies an Error for programmatic branching.
type Kind = core.Kind

const (
	KindDatabase         = core.KindDatabase
	KindScripting        = core.KindScripting
	KindSchemaNotFound   = core.KindSchemaNotFound
	KindNoteNotFound     = core.KindNoteNotFound
	KindValidationFailed = core.KindValidationFailed
	KindInvalidWorkspace = core.KindInvalidWorkspace
	KindIO               = core.KindIO
	KindJSON             = core.KindJSON
	KindExportFormat     = core.KindExportFormat
	KindExportZip        = core.KindExportZip
)

// Err returns a sentinel error matching all errors of the given Kind,
// for use with errors.Is.
func Err(kind Kind) error { return core.Err(kind) }

// UserMessage projects err to a short, user-facing message.
func UserMessage(err error) string { return core.UserMessage(err) }

// DeriveDeviceID computes this host's stable device identifier, used to
// attribute operations recorded by this machine.
func DeriveDeviceID() (string, error) { return core.DeriveDeviceID() }
