package script

import (
	"context"
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/tilekeys/internal/action"
	"github.com/dshills/tilekeys/internal/input/key"
	"github.com/dshills/tilekeys/internal/input/keymap"
)

// CategoryScript is the default category of script bindings.
const CategoryScript = "Script"

// Env holds the values exposed to a script as globals.
type Env struct {
	// Modifier is exposed as the string global mod.
	Modifier key.Modifier

	// Groups is exposed as the array global groups.
	Groups []string

	// Terminal is exposed as the string global terminal.
	Terminal string
}

// Error reports a script that failed to run.
type Error struct {
	// Name is the script path or chunk name.
	Name string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("script %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// LoadFile runs the script at path and returns the bindings it declared,
// in declaration order. Conflicts are left to the registry.
func LoadFile(ctx context.Context, path string, env Env, opts ...StateOption) ([]keymap.Binding, error) {
	return load(ctx, path, env, opts, func(s *State) error {
		return s.DoFile(ctx, path)
	})
}

// LoadString runs a script held in memory. name is used in errors.
func LoadString(ctx context.Context, name, code string, env Env, opts ...StateOption) ([]keymap.Binding, error) {
	return load(ctx, name, env, opts, func(s *State) error {
		return s.DoString(ctx, code)
	})
}

func load(ctx context.Context, name string, env Env, opts []StateOption, exec func(*State) error) ([]keymap.Binding, error) {
	s := NewState(opts...)
	defer s.Close()

	c := &collector{}
	c.install(s, env)

	if err := exec(s); err != nil {
		return nil, &Error{Name: name, Err: err}
	}
	return c.bindings, nil
}

// collector accumulates the bindings declared by bind().
type collector struct {
	bindings []keymap.Binding
}

func (c *collector) install(s *State, env Env) {
	s.SetGlobal("mod", lua.LString(env.Modifier.String()))
	s.SetGlobal("terminal", lua.LString(env.Terminal))

	groups := s.L.NewTable()
	for _, g := range env.Groups {
		groups.Append(lua.LString(g))
	}
	s.SetGlobal("groups", groups)

	s.RegisterFunc("bind", c.bind)
	s.RegisterFunc("chord", chordFunc)
	s.RegisterFunc("spawn", actionFunc(func(L *lua.LState) action.Action {
		return action.Spawn(L.CheckString(1))
	}))
	s.RegisterFunc("host", actionFunc(func(L *lua.LState) action.Action {
		return action.Host(L.CheckString(1))
	}))
	s.RegisterFunc("switch_group", actionFunc(func(L *lua.LState) action.Action {
		return action.SwitchGroup(L.CheckString(1))
	}))
	s.RegisterFunc("send_to_group", actionFunc(func(L *lua.LState) action.Action {
		return action.SendToGroup(L.CheckString(1))
	}))
	s.RegisterFunc("scratchpad", actionFunc(func(L *lua.LState) action.Action {
		return action.ToggleScratchpad(L.CheckString(1), L.CheckString(2))
	}))
}

// bind(keys, action [, description [, category]])
func (c *collector) bind(L *lua.LState) int {
	spec := L.CheckString(1)
	text := L.CheckString(2)
	desc := L.OptString(3, "")
	category := L.OptString(4, CategoryScript)

	chord, err := key.Parse(spec)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	act, err := action.Parse(text)
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}

	c.bindings = append(c.bindings, keymap.NewBinding(chord, act).
		WithDescription(desc).
		WithCategory(category))
	return 0
}

// chord(part, ...) joins its arguments with "+".
func chordFunc(L *lua.LState) int {
	n := L.GetTop()
	if n == 0 {
		L.ArgError(1, "chord needs at least a key")
		return 0
	}
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if p := L.CheckString(i); p != "" {
			parts = append(parts, p)
		}
	}
	L.Push(lua.LString(strings.Join(parts, "+")))
	return 1
}

// actionFunc wraps a constructor into a Lua function returning the
// action text.
func actionFunc(build func(L *lua.LState) action.Action) lua.LGFunction {
	return func(L *lua.LState) int {
		act := build(L)
		if err := act.Validate(); err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(lua.LString(act.String()))
		return 1
	}
}
