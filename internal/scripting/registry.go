// Package scripting is the embedded evaluator that registers note
// schemas and pre-save hooks from JavaScript source, distinguishing
// system-bundled registrations from user-loaded ones so the latter
// can be cleared and reloaded without disturbing the former.
package scripting

import (
	"embed"
	"fmt"
	"sync"

	"github.com/dop251/goja"
	"github.com/untoldecay/noteskeep/internal/fields"
)

//go:embed bundled/*.js
var bundledScripts embed.FS

// source distinguishes a bundled (System) script load from a
// LoadUserScript call (User), so registrations made during the latter
// can be found and dropped again by ClearUserRegistrations.
type source int

const (
	sourceNone source = iota
	sourceSystem
	sourceUser
)

// Registry holds the goja runtime plus the schema and hook maps the
// four host functions mutate. All state is guarded by mu so
// concurrent access from outside the single-threaded evaluation loop
// doesn't corrupt it; a panic while the lock is held (never expected
// in normal operation) would otherwise deadlock every later call,
// which scripting errors at the call site make visible instead.
type Registry struct {
	mu sync.Mutex

	rt      *goja.Runtime
	schemas map[string]Schema
	hooks   map[string]HookEntry

	userSchemaNames map[string]bool
	userHookNames   map[string]bool

	currentSource  source
	currentProgram *goja.Program
}

// New builds a registry and loads the bundled system schemas.
func New() (*Registry, error) {
	reg := &Registry{
		rt:              goja.New(),
		schemas:         make(map[string]Schema),
		hooks:           make(map[string]HookEntry),
		userSchemaNames: make(map[string]bool),
		userHookNames:   make(map[string]bool),
	}
	reg.registerHostFunctions()

	entries, err := bundledScripts.ReadDir("bundled")
	if err != nil {
		return nil, fmt.Errorf("read bundled scripts: %w", err)
	}
	for _, entry := range entries {
		src, err := bundledScripts.ReadFile("bundled/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read bundled script %s: %w", entry.Name(), err)
		}
		if err := reg.loadScript(string(src), sourceSystem); err != nil {
			return nil, fmt.Errorf("load bundled script %s: %w", entry.Name(), err)
		}
	}
	return reg, nil
}

func (r *Registry) registerHostFunctions() {
	_ = r.rt.Set("schema", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			panic(r.rt.NewTypeError("schema(name, def) requires two arguments"))
		}
		name := call.Argument(0).String()
		defObj := call.Argument(1).ToObject(r.rt)

		parsed, err := parseSchema(r.rt, name, defObj)
		if err != nil {
			panic(r.rt.NewGoError(err))
		}

		r.mu.Lock()
		r.schemas[name] = parsed
		if r.currentSource == sourceUser {
			r.userSchemaNames[name] = true
		}
		r.mu.Unlock()
		return goja.Undefined()
	})

	_ = r.rt.Set("on_save", func(call goja.FunctionCall) goja.Value {
		if r.currentSource == sourceNone {
			panic(r.rt.NewGoError(fmt.Errorf("on_save called outside a script load")))
		}
		if len(call.Arguments) < 2 {
			panic(r.rt.NewTypeError("on_save(name, closure) requires two arguments"))
		}
		name := call.Argument(0).String()
		fn, ok := goja.AssertFunction(call.Argument(1))
		if !ok {
			panic(r.rt.NewTypeError("on_save: second argument must be a function"))
		}

		r.mu.Lock()
		r.hooks[name] = HookEntry{Closure: fn, Program: r.currentProgram}
		if r.currentSource == sourceUser {
			r.userHookNames[name] = true
		}
		r.mu.Unlock()
		return goja.Undefined()
	})

	_ = r.rt.Set("schema_exists", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		r.mu.Lock()
		_, ok := r.schemas[name]
		r.mu.Unlock()
		return r.rt.ToValue(ok)
	})

	_ = r.rt.Set("get_schema_fields", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		r.mu.Lock()
		s, ok := r.schemas[name]
		r.mu.Unlock()
		if !ok {
			panic(r.rt.NewGoError(fmt.Errorf("schema not found: %s", name)))
		}

		arr := r.rt.NewArray()
		for i, fd := range s.Fields {
			obj := r.rt.NewObject()
			_ = obj.Set("name", fd.Name)
			_ = obj.Set("type", fd.Type)
			_ = obj.Set("required", fd.Required)
			_ = arr.Set(fmt.Sprintf("%d", i), obj)
		}
		return arr
	})
}

// loadScript compiles and runs src, tracking registrations under the
// given source. The source flag is always cleared on exit, including
// on error, so a failed load can't leave on_save permanently open.
func (r *Registry) loadScript(src string, src2 source) error {
	prog, err := goja.Compile("", src, false)
	if err != nil {
		return fmt.Errorf("compile script: %w", err)
	}

	r.mu.Lock()
	r.currentSource = src2
	r.currentProgram = prog
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.currentSource = sourceNone
		r.currentProgram = nil
		r.mu.Unlock()
	}()

	if _, err := r.rt.RunProgram(prog); err != nil {
		return fmt.Errorf("evaluate script: %w", err)
	}
	return nil
}

// LoadUserScript evaluates src, recording any schema/hook it
// registers as user-sourced so ClearUserRegistrations can find it.
func (r *Registry) LoadUserScript(src string) error {
	return r.loadScript(src, sourceUser)
}

// ClearUserRegistrations drops exactly the schemas and hooks recorded
// during a LoadUserScript call. Bundled system registrations are
// never touched.
func (r *Registry) ClearUserRegistrations() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name := range r.userSchemaNames {
		delete(r.schemas, name)
	}
	for name := range r.userHookNames {
		delete(r.hooks, name)
	}
	r.userSchemaNames = make(map[string]bool)
	r.userHookNames = make(map[string]bool)
}

func (r *Registry) GetSchema(name string) (Schema, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.schemas[name]
	return s, ok
}

func (r *Registry) SchemaExists(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.schemas[name]
	return ok
}

func (r *Registry) ListSchemas() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	return names
}

func (r *Registry) getHook(name string) (HookEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hooks[name]
	return h, ok
}

// RunHook runs the pre-save hook for schema, if one is registered.
// ok is false when there is no hook, in which case the caller keeps
// its proposed title and values unchanged.
func (r *Registry) RunHook(schema Schema, noteID, title string, values map[string]fields.Value) (newTitle string, newValues map[string]fields.Value, ok bool, err error) {
	hook, found := r.getHook(schema.Name)
	if !found {
		return title, values, false, nil
	}
	newTitle, newValues, err = RunOnSaveHook(r.rt, hook, schema, noteID, title, values)
	if err != nil {
		return "", nil, true, err
	}
	return newTitle, newValues, true, nil
}
