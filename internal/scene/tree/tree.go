// Package tree provides pure traversal and structure-sharing mutation
// helpers over the node forest. All functions are total: they never panic
// on malformed input and never validate model invariants.
//
// Node-id uniqueness is enforced by the validate package, not here. Given
// an unvalidated forest with duplicate ids, UpdateByID and Remove apply to
// every occurrence of the key; callers that need single-match semantics
// must validate first.
package tree

import "github.com/dshills/scenestorm/internal/scene"

// FindByID returns the first node with the given id in pre-order,
// depth-first document order, or nil if no node matches.
func FindByID(forest []*scene.Node, id string) *scene.Node {
	for _, n := range forest {
		if n == nil {
			continue
		}
		if n.ID == id {
			return n
		}
		if found := FindByID(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// FlattenIDs returns every node id in pre-order, depth-first document
// order: roots left to right, each node's children before its next
// sibling. This is the canonical ordering for focus navigation.
func FlattenIDs(forest []*scene.Node) []string {
	var ids []string
	var walk func(nodes []*scene.Node)
	walk = func(nodes []*scene.Node) {
		for _, n := range nodes {
			if n == nil {
				continue
			}
			ids = append(ids, n.ID)
			walk(n.Children)
		}
	}
	walk(forest)
	return ids
}

// UpdateByID replaces every node whose id matches with the result of fn.
// The updater may decline a change by returning nil or its argument
// unchanged. Only the ancestor chain of a mutated node is reallocated;
// sibling subtrees off the path are reused by reference.
//
// When nothing matches (or every updater declines), the original forest
// slice is returned with changed=false, so callers can skip downstream
// work such as marking a session dirty.
func UpdateByID(forest []*scene.Node, id string, fn func(*scene.Node) *scene.Node) ([]*scene.Node, bool) {
	out := forest
	changed := false
	for i, n := range forest {
		next := updateNode(n, id, fn)
		if next == n {
			continue
		}
		if !changed {
			out = make([]*scene.Node, len(forest))
			copy(out, forest)
			changed = true
		}
		out[i] = next
	}
	return out, changed
}

// updateNode applies fn to n if it matches, then descends into children.
// Returns n itself when nothing underneath changed.
func updateNode(n *scene.Node, id string, fn func(*scene.Node) *scene.Node) *scene.Node {
	if n == nil {
		return nil
	}
	cur := n
	if cur.ID == id {
		if next := fn(cur); next != nil {
			cur = next
		}
	}
	children, changed := UpdateByID(cur.Children, id, fn)
	if changed {
		c := *cur
		c.Children = children
		cur = &c
	}
	return cur
}

// Insert adds node under the parent with the given id, rebuilding the
// ancestor chain with structural sharing. An empty parentID appends a new
// forest root. Returns the original forest with inserted=false when the
// parent does not exist.
func Insert(forest []*scene.Node, parentID string, node *scene.Node) ([]*scene.Node, bool) {
	if parentID == "" {
		out := make([]*scene.Node, len(forest)+1)
		copy(out, forest)
		out[len(forest)] = node
		return out, true
	}
	return UpdateByID(forest, parentID, func(parent *scene.Node) *scene.Node {
		c := *parent
		c.Children = make([]*scene.Node, len(parent.Children)+1)
		copy(c.Children, parent.Children)
		c.Children[len(parent.Children)] = node
		return &c
	})
}

// Remove deletes every node with the given id (and its subtree),
// rebuilding ancestor chains with structural sharing. Returns the original
// forest with removed=false when no node matches.
func Remove(forest []*scene.Node, id string) ([]*scene.Node, bool) {
	changed := false
	out := make([]*scene.Node, 0, len(forest))
	for _, n := range forest {
		if n != nil && n.ID == id {
			changed = true
			continue
		}
		next := n
		if n != nil {
			if children, childChanged := Remove(n.Children, id); childChanged {
				c := *n
				c.Children = children
				next = &c
				changed = true
			}
		}
		out = append(out, next)
	}
	if !changed {
		return forest, false
	}
	return out, true
}
