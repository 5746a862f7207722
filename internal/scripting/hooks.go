package scripting

import (
	"fmt"

	"github.com/dop251/goja"
	"github.com/untoldecay/noteskeep/internal/fields"
)

// HookEntry is a stored pre-save hook bound to a schema name, holding
// the closure plus the compiled script unit that defined it so the
// closure stays callable for as long as the hook is registered.
type HookEntry struct {
	Closure goja.Callable
	Program *goja.Program
}

// RunOnSaveHook invokes hook with the proposed note and converts its
// result back into a title and one value per schema field. Looking up
// whether a hook exists is the caller's job (see Registry.RunHook).
func RunOnSaveHook(rt *goja.Runtime, hook HookEntry, schema Schema, noteID, title string, values map[string]fields.Value) (newTitle string, newValues map[string]fields.Value, err error) {
	fieldsObj := rt.NewObject()
	for name, v := range values {
		if err := fieldsObj.Set(name, fieldValueToJS(rt, v)); err != nil {
			return "", nil, fmt.Errorf("build hook input for field %q: %w", name, err)
		}
	}

	input := rt.NewObject()
	_ = input.Set("id", noteID)
	_ = input.Set("node_type", schema.Name)
	_ = input.Set("title", title)
	_ = input.Set("fields", fieldsObj)

	result, err := hook.Closure(goja.Undefined(), rt.ToValue(input))
	if err != nil {
		return "", nil, fmt.Errorf("on_save hook for %q: %w", schema.Name, err)
	}
	if result == nil || goja.IsUndefined(result) || goja.IsNull(result) {
		return "", nil, fmt.Errorf("on_save hook for %q must return an object", schema.Name)
	}
	resultObj := result.ToObject(rt)

	titleVal := resultObj.Get("title")
	if titleVal == nil || goja.IsUndefined(titleVal) {
		return "", nil, fmt.Errorf("on_save hook for %q: result missing 'title'", schema.Name)
	}
	newTitle = titleVal.String()

	rawFields := resultObj.Get("fields")
	var returned *goja.Object
	if rawFields != nil && !goja.IsUndefined(rawFields) && !goja.IsNull(rawFields) {
		returned = rawFields.ToObject(rt)
	}

	newValues = make(map[string]fields.Value, len(schema.Fields))
	for _, fd := range schema.Fields {
		var jsVal goja.Value
		if returned != nil {
			jsVal = returned.Get(fd.Name)
		}
		newValues[fd.Name] = jsToFieldValue(fd.Type, jsVal)
	}

	return newTitle, newValues, nil
}

func fieldValueToJS(rt *goja.Runtime, v fields.Value) goja.Value {
	switch v.Kind {
	case fields.Text:
		return rt.ToValue(v.TextVal)
	case fields.Number:
		return rt.ToValue(v.NumberVal)
	case fields.Boolean:
		return rt.ToValue(v.BooleanVal)
	case fields.Date:
		if v.DateVal == nil {
			return goja.Undefined()
		}
		return rt.ToValue(*v.DateVal)
	case fields.Email:
		return rt.ToValue(v.EmailVal)
	default:
		return goja.Undefined()
	}
}

// jsToFieldValue converts the value returned for one field back into
// a fields.Value, applying the per-type default when absent.
func jsToFieldValue(fieldType string, v goja.Value) fields.Value {
	absent := v == nil || goja.IsUndefined(v) || goja.IsNull(v)

	switch fieldType {
	case "text", "textarea", "select":
		if absent {
			return fields.NewText("")
		}
		return fields.NewText(v.String())
	case "number", "rating":
		if absent {
			return fields.NewNumber(0)
		}
		return fields.NewNumber(v.ToFloat())
	case "boolean":
		if absent {
			return fields.NewBoolean(false)
		}
		return fields.NewBoolean(v.ToBoolean())
	case "date":
		if absent {
			return fields.NewDate(nil)
		}
		s := v.String()
		return fields.NewDate(&s)
	case "email":
		if absent {
			return fields.NewEmail("")
		}
		return fields.NewEmail(v.String())
	default:
		if absent {
			return fields.NewText("")
		}
		return fields.NewText(v.String())
	}
}
