// Package fields defines FieldValue, the tagged union note fields are
// stored as. It has no dependency on the store or the scripting
// runtime so both can share the same type without an import cycle.
package fields

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind tags which variant of Value is populated.
type Kind string

const (
	Text    Kind = "Text"
	Number  Kind = "Number"
	Boolean Kind = "Boolean"
	Date    Kind = "Date"
	Email   Kind = "Email"
)

// Value is a tagged union over the field types a schema can declare.
// Only the member matching Kind is meaningful. Date is the one
// optional member: a nil pointer represents "no date set", distinct
// from any zero date.
type Value struct {
	Kind       Kind
	TextVal    string
	NumberVal  float64
	BooleanVal bool
	DateVal    *string
	EmailVal   string
}

func NewText(s string) Value    { return Value{Kind: Text, TextVal: s} }
func NewNumber(n float64) Value { return Value{Kind: Number, NumberVal: n} }
func NewBoolean(b bool) Value   { return Value{Kind: Boolean, BooleanVal: b} }
func NewEmail(s string) Value   { return Value{Kind: Email, EmailVal: s} }
func NewDate(ymd *string) Value { return Value{Kind: Date, DateVal: ymd} }

// MarshalJSON encodes the value as a single-key object naming the
// active variant, e.g. {"Text":"hello"} or {"Date":null}.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case Text:
		return json.Marshal(map[string]string{"Text": v.TextVal})
	case Number:
		return json.Marshal(map[string]float64{"Number": v.NumberVal})
	case Boolean:
		return json.Marshal(map[string]bool{"Boolean": v.BooleanVal})
	case Date:
		return json.Marshal(map[string]*string{"Date": v.DateVal})
	case Email:
		return json.Marshal(map[string]string{"Email": v.EmailVal})
	default:
		return nil, fmt.Errorf("field value has no kind set")
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	for key, val := range raw {
		switch Kind(key) {
		case Text:
			var s string
			if err := json.Unmarshal(val, &s); err != nil {
				return err
			}
			*v = NewText(s)
		case Number:
			var n float64
			if err := json.Unmarshal(val, &n); err != nil {
				return err
			}
			*v = NewNumber(n)
		case Boolean:
			var b bool
			if err := json.Unmarshal(val, &b); err != nil {
				return err
			}
			*v = NewBoolean(b)
		case Date:
			var s *string
			if err := json.Unmarshal(val, &s); err != nil {
				return err
			}
			*v = NewDate(s)
		case Email:
			var s string
			if err := json.Unmarshal(val, &s); err != nil {
				return err
			}
			*v = NewEmail(s)
		default:
			return fmt.Errorf("unknown field value tag %q", key)
		}
		return nil
	}
	return fmt.Errorf("empty field value object")
}

// ZeroValue returns the zero value for a field of the given schema
// type string. Unknown types fall back to empty text, so a stored note
// never fails to load because of one. Schema parsing accepts any type
// string and emits no warning for an unknown one.
func ZeroValue(fieldType string) Value {
	switch fieldType {
	case "text", "textarea":
		return NewText("")
	case "number", "rating":
		return NewNumber(0)
	case "boolean":
		return NewBoolean(false)
	case "date":
		return NewDate(nil)
	case "email":
		return NewEmail("")
	case "select":
		return NewText("")
	default:
		return NewText("")
	}
}
