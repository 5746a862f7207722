package scripting

import (
	"fmt"

	"github.com/dop251/goja"
	"github.com/untoldecay/noteskeep/internal/fields"
)

// FieldDefinition describes one typed field within a note schema.
type FieldDefinition struct {
	Name        string
	Type        string
	Required    bool
	CanView     bool
	CanEdit     bool
	Options     []string
	Max         *float64
	TitleHolder bool // unused placeholder kept false; titles aren't fields
}

// Schema is a named, ordered list of field definitions plus the two
// title-level visibility flags.
type Schema struct {
	Name          string
	Fields        []FieldDefinition
	TitleCanView  bool
	TitleCanEdit  bool
}

// DefaultFields returns the zero value of every field in schema
// order, the values installed when a note of this type is created.
func (s Schema) DefaultFields() map[string]fields.Value {
	out := make(map[string]fields.Value, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Name] = fields.ZeroValue(f.Type)
	}
	return out
}

// parseSchema builds a Schema from the object passed to the host
// schema(name, def) function. def.fields is required; all other keys
// are optional with the documented defaults.
func parseSchema(rt *goja.Runtime, name string, def *goja.Object) (Schema, error) {
	s := Schema{Name: name, TitleCanView: true, TitleCanEdit: true}

	if v := def.Get("title_can_view"); v != nil && !goja.IsUndefined(v) {
		s.TitleCanView = v.ToBoolean()
	}
	if v := def.Get("title_can_edit"); v != nil && !goja.IsUndefined(v) {
		s.TitleCanEdit = v.ToBoolean()
	}

	rawFields := def.Get("fields")
	if rawFields == nil || goja.IsUndefined(rawFields) {
		return Schema{}, fmt.Errorf("schema %q: missing 'fields' array", name)
	}
	fieldsObj := rawFields.ToObject(rt)
	length := int64(fieldsObj.Get("length").ToInteger())

	for i := int64(0); i < length; i++ {
		item := fieldsObj.Get(fmt.Sprintf("%d", i))
		if item == nil || goja.IsUndefined(item) {
			continue
		}
		fieldObj := item.ToObject(rt)
		fd, err := parseFieldDefinition(fieldObj)
		if err != nil {
			return Schema{}, fmt.Errorf("schema %q: %w", name, err)
		}
		s.Fields = append(s.Fields, fd)
	}

	return s, nil
}

func parseFieldDefinition(obj *goja.Object) (FieldDefinition, error) {
	nameVal := obj.Get("name")
	if nameVal == nil || goja.IsUndefined(nameVal) {
		return FieldDefinition{}, fmt.Errorf("field missing 'name'")
	}
	typeVal := obj.Get("type")
	if typeVal == nil || goja.IsUndefined(typeVal) {
		return FieldDefinition{}, fmt.Errorf("field missing 'type'")
	}

	fd := FieldDefinition{
		Name:    nameVal.String(),
		Type:    typeVal.String(),
		CanView: true,
		CanEdit: true,
	}

	if v := obj.Get("required"); v != nil && !goja.IsUndefined(v) {
		fd.Required = v.ToBoolean()
	}
	if v := obj.Get("can_view"); v != nil && !goja.IsUndefined(v) {
		fd.CanView = v.ToBoolean()
	}
	if v := obj.Get("can_edit"); v != nil && !goja.IsUndefined(v) {
		fd.CanEdit = v.ToBoolean()
	}
	if v := obj.Get("options"); v != nil && !goja.IsUndefined(v) {
		exported := v.Export()
		items, ok := exported.([]interface{})
		if !ok {
			return FieldDefinition{}, fmt.Errorf("field %q: 'options' must be an array", fd.Name)
		}
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return FieldDefinition{}, fmt.Errorf("field %q: 'options' must contain only strings", fd.Name)
			}
			fd.Options = append(fd.Options, s)
		}
	}
	if v := obj.Get("max"); v != nil && !goja.IsUndefined(v) {
		max := v.ToFloat()
		if max < 0 {
			return FieldDefinition{}, fmt.Errorf("field %q: 'max' must be >= 0", fd.Name)
		}
		fd.Max = &max
	}

	return fd, nil
}
