package core

import "github.com/untoldecay/noteskeep/internal/fields"

// FieldValue is the tagged union a note's field map is built from.
type FieldValue = fields.Value

const (
	FieldText    = fields.Text
	FieldNumber  = fields.Number
	FieldBoolean = fields.Boolean
	FieldDate    = fields.Date
	FieldEmail   = fields.Email
)

var (
	NewText    = fields.NewText
	NewNumber  = fields.NewNumber
	NewBoolean = fields.NewBoolean
	NewEmail   = fields.NewEmail
	NewDate    = fields.NewDate
)

// Note is the fundamental tree entity. ParentID is nil for a root.
type Note struct {
	ID         string                `json:"id"`
	Title      string                `json:"title"`
	NodeType   string                `json:"nodeType"`
	ParentID   *string               `json:"parentId,omitempty"`
	Position   int32                 `json:"position"`
	CreatedAt  int64                 `json:"createdAt"`
	ModifiedAt int64                 `json:"modifiedAt"`
	CreatedBy  int64                 `json:"createdBy"`
	ModifiedBy int64                 `json:"modifiedBy"`
	Fields     map[string]FieldValue `json:"fields"`
	IsExpanded bool                  `json:"isExpanded"`
}
