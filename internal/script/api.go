package script

import (
	"context"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/scenestorm/internal/editor"
	"github.com/dshills/scenestorm/internal/editor/mode"
	"github.com/dshills/scenestorm/internal/scene"
	"github.com/dshills/scenestorm/internal/scene/tree"
)

// sceneModule implements the Lua `scene` API over a session.
type sceneModule struct {
	session *editor.Session
}

// registerSceneModule installs the scene module table as a global.
func registerSceneModule(L *lua.LState, session *editor.Session) {
	m := &sceneModule{session: session}

	mod := L.NewTable()
	L.SetField(mod, "ids", L.NewFunction(m.ids))
	L.SetField(mod, "find", L.NewFunction(m.find))
	L.SetField(mod, "selected", L.NewFunction(m.selected))
	L.SetField(mod, "focused", L.NewFunction(m.focused))
	L.SetField(mod, "select", L.NewFunction(m.selectNode))
	L.SetField(mod, "set_selection", L.NewFunction(m.setSelection))
	L.SetField(mod, "focus", L.NewFunction(m.focus))
	L.SetField(mod, "focus_next", L.NewFunction(m.focusNext))
	L.SetField(mod, "mode", L.NewFunction(m.currentMode))
	L.SetField(mod, "switch_mode", L.NewFunction(m.switchMode))
	L.SetField(mod, "dirty", L.NewFunction(m.dirty))
	L.SetField(mod, "set_name", L.NewFunction(m.setName))
	L.SetField(mod, "set_position", L.NewFunction(m.setPosition))
	L.SetField(mod, "add_tag", L.NewFunction(m.addTag))
	L.SetField(mod, "add_node", L.NewFunction(m.addNode))
	L.SetField(mod, "remove_node", L.NewFunction(m.removeNode))
	L.SetField(mod, "export", L.NewFunction(m.export))
	L.SetField(mod, "import", L.NewFunction(m.importDoc))
	L.SetField(mod, "undo", L.NewFunction(m.undo))
	L.SetField(mod, "redo", L.NewFunction(m.redo))

	L.SetField(mod, "EDIT", lua.LString(mode.ModeEdit))
	L.SetField(mod, "PLAY", lua.LString(mode.ModePlay))

	L.SetGlobal("scene", mod)
}

// ids() -> table
// Returns every node id in document order.
func (m *sceneModule) ids(L *lua.LState) int {
	tbl := L.NewTable()
	for _, id := range tree.FlattenIDs(m.session.Document().Nodes) {
		tbl.Append(lua.LString(id))
	}
	L.Push(tbl)
	return 1
}

// find(id) -> table|nil
// Returns a snapshot of the node with the given id.
func (m *sceneModule) find(L *lua.LState) int {
	id := L.CheckString(1)
	n := tree.FindByID(m.session.Document().Nodes, id)
	if n == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(nodeTable(L, n))
	return 1
}

// selected() -> table
func (m *sceneModule) selected(L *lua.LState) int {
	tbl := L.NewTable()
	for _, id := range m.session.Selected() {
		tbl.Append(lua.LString(id))
	}
	L.Push(tbl)
	return 1
}

// focused() -> string|nil
func (m *sceneModule) focused(L *lua.LState) int {
	id := m.session.Focused()
	if id == "" {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(id))
	return 1
}

// select(id [, additive [, focus]])
func (m *sceneModule) selectNode(L *lua.LState) int {
	id := L.CheckString(1)
	additive := optBool(L, 2, false)
	focus := optBool(L, 3, true)
	m.session.Select(id, additive, focus)
	return 0
}

// set_selection(ids [, focus_last])
func (m *sceneModule) setSelection(L *lua.LState) int {
	tbl := L.CheckTable(1)
	focusLast := optBool(L, 2, true)
	var ids []string
	tbl.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			ids = append(ids, string(s))
		}
	})
	m.session.SetSelection(ids, focusLast)
	return 0
}

// focus(id)
func (m *sceneModule) focus(L *lua.LState) int {
	m.session.Focus(L.OptString(1, ""))
	return 0
}

// focus_next([direction]) -> string|nil
// Cycles focus and returns the newly focused id.
func (m *sceneModule) focusNext(L *lua.LState) int {
	direction := L.OptInt(1, 1)
	m.session.FocusNext(direction)
	return m.focused(L)
}

// mode() -> string
func (m *sceneModule) currentMode(L *lua.LState) int {
	L.Push(lua.LString(m.session.Mode()))
	return 1
}

// switch_mode(name) -> bool
func (m *sceneModule) switchMode(L *lua.LState) int {
	target := mode.Mode(L.CheckString(1))
	ok, err := m.session.SwitchMode(context.Background(), target)
	if err != nil {
		L.RaiseError("switch_mode: %v", err)
		return 0
	}
	L.Push(lua.LBool(ok))
	return 1
}

// dirty() -> bool
func (m *sceneModule) dirty(L *lua.LState) int {
	L.Push(lua.LBool(m.session.IsDirty()))
	return 1
}

// set_name(id, name) -> bool
func (m *sceneModule) setName(L *lua.LState) int {
	id := L.CheckString(1)
	name := L.CheckString(2)
	changed := m.session.UpdateNode(id, func(n *scene.Node) *scene.Node {
		if n.Name == name {
			return nil
		}
		c := n.Clone()
		c.Name = name
		return c
	})
	L.Push(lua.LBool(changed))
	return 1
}

// set_position(id, x, y, z) -> bool
func (m *sceneModule) setPosition(L *lua.LState) int {
	id := L.CheckString(1)
	x := float64(L.CheckNumber(2))
	y := float64(L.CheckNumber(3))
	z := float64(L.CheckNumber(4))
	changed := m.session.UpdateNode(id, func(n *scene.Node) *scene.Node {
		c := n.Clone()
		var t scene.Transform
		if n.Transform != nil {
			t = *n.Transform
		}
		t.Position = &scene.Vec3{X: x, Y: y, Z: z}
		c.Transform = &t
		return c
	})
	L.Push(lua.LBool(changed))
	return 1
}

// add_tag(id, tag) -> bool
func (m *sceneModule) addTag(L *lua.LState) int {
	id := L.CheckString(1)
	tag := L.CheckString(2)
	changed := m.session.UpdateNode(id, func(n *scene.Node) *scene.Node {
		for _, existing := range n.Tags {
			if existing == tag {
				return nil
			}
		}
		c := n.Clone()
		c.Tags = append(append([]string(nil), n.Tags...), tag)
		return c
	})
	L.Push(lua.LBool(changed))
	return 1
}

// add_node(parent_id [, name]) -> string
// Adds a node (empty parent_id adds a root) and returns its generated id.
func (m *sceneModule) addNode(L *lua.LState) int {
	parentID := L.OptString(1, "")
	name := L.OptString(2, "")
	id, err := m.session.AddNode(parentID, &scene.Node{Name: name})
	if err != nil {
		L.RaiseError("add_node: %v", err)
		return 0
	}
	L.Push(lua.LString(id))
	return 1
}

// remove_node(id) -> bool
func (m *sceneModule) removeNode(L *lua.LState) int {
	L.Push(lua.LBool(m.session.RemoveNode(L.CheckString(1))))
	return 1
}

// export() -> string, number
// Returns the wire text and its fingerprint.
func (m *sceneModule) export(L *lua.LState) int {
	res, err := m.session.Export()
	if err != nil {
		L.RaiseError("export: %v", err)
		return 0
	}
	L.Push(lua.LString(res.Data))
	L.Push(lua.LNumber(res.Fingerprint))
	return 2
}

// import(text)
func (m *sceneModule) importDoc(L *lua.LState) int {
	if err := m.session.Import([]byte(L.CheckString(1))); err != nil {
		L.RaiseError("import: %v", err)
		return 0
	}
	return 0
}

// undo() -> bool
func (m *sceneModule) undo(L *lua.LState) int {
	L.Push(lua.LBool(m.session.Undo()))
	return 1
}

// redo() -> bool
func (m *sceneModule) redo(L *lua.LState) int {
	L.Push(lua.LBool(m.session.Redo()))
	return 1
}

// nodeTable converts a node to a read-only Lua snapshot.
func nodeTable(L *lua.LState, n *scene.Node) *lua.LTable {
	tbl := L.NewTable()
	L.SetField(tbl, "id", lua.LString(n.ID))
	if n.Name != "" {
		L.SetField(tbl, "name", lua.LString(n.Name))
	}
	if len(n.Tags) > 0 {
		tags := L.NewTable()
		for _, t := range n.Tags {
			tags.Append(lua.LString(t))
		}
		L.SetField(tbl, "tags", tags)
	}
	if n.Asset != nil {
		L.SetField(tbl, "asset_id", lua.LString(n.Asset.AssetID))
	}
	if n.Transform != nil && n.Transform.Position != nil {
		pos := L.NewTable()
		L.SetField(pos, "x", lua.LNumber(n.Transform.Position.X))
		L.SetField(pos, "y", lua.LNumber(n.Transform.Position.Y))
		L.SetField(pos, "z", lua.LNumber(n.Transform.Position.Z))
		L.SetField(tbl, "position", pos)
	}
	L.SetField(tbl, "child_count", lua.LNumber(len(n.Children)))
	return tbl
}

// optBool reads an optional boolean argument with a default.
func optBool(L *lua.LState, n int, def bool) bool {
	v := L.Get(n)
	if v == lua.LNil {
		return def
	}
	return lua.LVAsBool(v)
}
