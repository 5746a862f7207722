// Package core implements the workspace facade, the note tree, the
// operation log, and the export/import codec.
package core

import (
	"errors"
	"fmt"
)

// Kind classifies a failure the way a caller needs to branch on it,
// independent of the underlying cause.
type Kind string

const (
	KindDatabase         Kind = "Database"
	KindScripting        Kind = "Scripting"
	KindSchemaNotFound   Kind = "SchemaNotFound"
	KindNoteNotFound     Kind = "NoteNotFound"
	KindValidationFailed Kind = "ValidationFailed"
	KindInvalidWorkspace Kind = "InvalidWorkspace"
	KindIO               Kind = "Io"
	KindJSON             Kind = "Json"
	KindExportFormat     Kind = "Export.InvalidFormat"
	KindExportZip        Kind = "Export.ZipError"
)

// Error wraps an underlying cause with the Kind a caller branches on
// and the detail a human reads.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is allows errors.Is(err, core.Err(kind)) style matching on Kind alone.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) && other.Err == nil && other.Msg == "" {
		return e.Kind == other.Kind
	}
	return false
}

// Err constructs a bare sentinel usable with errors.Is to test a Kind.
func Err(kind Kind) *Error { return &Error{Kind: kind} }

func wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func errDatabase(msg string, err error) *Error         { return wrap(KindDatabase, msg, err) }
func errScripting(msg string) *Error                   { return wrap(KindScripting, msg, nil) }
func errScriptingWrap(msg string, err error) *Error     { return wrap(KindScripting, msg, err) }
func errSchemaNotFound(name string) *Error              { return wrap(KindSchemaNotFound, name, nil) }
func errNoteNotFound(id string) *Error                  { return wrap(KindNoteNotFound, id, nil) }
func errValidation(msg string) *Error                   { return wrap(KindValidationFailed, msg, nil) }
func errInvalidWorkspace(msg string, err error) *Error  { return wrap(KindInvalidWorkspace, msg, err) }
func errIO(msg string, err error) *Error                { return wrap(KindIO, msg, err) }
func errJSON(msg string, err error) *Error              { return wrap(KindJSON, msg, err) }
func errExportFormat(msg string) *Error                 { return wrap(KindExportFormat, msg, nil) }
func errExportZip(msg string, err error) *Error         { return wrap(KindExportZip, msg, err) }

// UserMessage collapses a technical error into a short, actionable
// string suitable for display outside a debug log. Validation errors
// pass their message through verbatim since they already describe a
// user-facing constraint.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	switch e.Kind {
	case KindDatabase:
		return fmt.Sprintf("Failed to save: %s", e.detail())
	case KindScripting:
		return fmt.Sprintf("Script error: %s", e.detail())
	case KindSchemaNotFound:
		return fmt.Sprintf("Unknown note type: %s", e.Msg)
	case KindNoteNotFound:
		return fmt.Sprintf("Note not found: %s", e.Msg)
	case KindValidationFailed:
		return e.Msg
	case KindInvalidWorkspace:
		return "Could not open workspace file"
	case KindIO:
		return fmt.Sprintf("Filesystem error: %s", e.detail())
	case KindJSON:
		return fmt.Sprintf("Could not read stored data: %s", e.detail())
	case KindExportFormat:
		return fmt.Sprintf("Invalid archive: %s", e.Msg)
	case KindExportZip:
		return fmt.Sprintf("Archive error: %s", e.detail())
	default:
		return e.Error()
	}
}

func (e *Error) detail() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Msg
}
