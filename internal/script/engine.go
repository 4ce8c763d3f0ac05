// Package script exposes the editor session to Lua. Scripts get a single
// `scene` module with query, selection, mutation, and serialization
// functions, letting batch edits and checks be written without touching
// the Go API.
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/scenestorm/internal/editor"
)

// Engine runs Lua against one editor session. Not safe for concurrent use;
// one engine per script runner.
type Engine struct {
	session *editor.Session
	state   *lua.LState
}

// New creates an engine bound to the session and registers the scene
// module into a fresh Lua state.
func New(session *editor.Session) *Engine {
	e := &Engine{
		session: session,
		state:   lua.NewState(),
	}
	registerSceneModule(e.state, session)
	return e
}

// Run executes the Lua script at the given path.
func (e *Engine) Run(path string) error {
	if err := e.state.DoFile(path); err != nil {
		return fmt.Errorf("running script %s: %w", path, err)
	}
	return nil
}

// Do executes Lua source text.
func (e *Engine) Do(source string) error {
	if err := e.state.DoString(source); err != nil {
		return fmt.Errorf("running script: %w", err)
	}
	return nil
}

// Close releases the Lua state.
func (e *Engine) Close() {
	e.state.Close()
}
