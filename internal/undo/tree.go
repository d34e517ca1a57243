// Package undo implements a branching undo tree: a rooted tree of
// modification groups with a "current node" cursor. Undo
// walks toward the root applying inverses; redo follows the
// most-recently-created child, not whichever branch was abandoned by an
// intervening edit.
//
// The tree is generic over the caller's Modification representation so it
// has no dependency on internal/buffer; internal/buffer supplies concrete
// Modification values and type-asserts the ones handed back by Undo/Redo.
package undo

// Modification is one atomic, invertible change. Buffer-level Insert and
// Erase modifications both satisfy this.
type Modification interface {
	// Inverse returns the modification that undoes this one.
	Inverse() Modification
}

// Group is an ordered, non-empty list of modifications committed
// atomically between a begin/end undo group pair (or a single public
// mutation outside any group).
type Group struct {
	Mods []Modification
}

// Node is one vertex of the undo tree: a committed group, its parent, and
// its children in creation order (the last child is always the redo
// target).
type Node struct {
	Group Group
	Parent *Node
	Children []*Node
	id uint64
}

// ID returns a process-local identifier for the node, stable for the
// lifetime of the tree. Useful for external code (e.g. a status line)
// that wants to display or diff undo-tree positions.
func (n *Node) ID() uint64 { return n.id }

// Tree is a rooted undo tree with a "current" cursor.
type Tree struct {
	root *Node
	current *Node
	nextID uint64
}

// NewTree creates a tree with an empty root node as the initial current
// position.
func NewTree() *Tree {
	root := &Node{id: 0}
	return &Tree{root: root, current: root, nextID: 1}
}

// Commit creates a new child of the current node holding mods, and makes
// it the current node. It is the only way new history enters the tree;
// any prior redo branch under the old current node is left in place as
// an earlier child, but Redo always follows the most recently created
// child, so Redo does not return to that branch.
func (t *Tree) Commit(mods []Modification) *Node {
	n := &Node{Group: Group{Mods: mods}, Parent: t.current, id: t.nextID}
	t.nextID++
	t.current.Children = append(t.current.Children, n)
	t.current = n
	return n
}

// Undo moves to the parent of the current node, if any, and returns the
// modifications to apply to reach that state, in the order they must be
// applied (reverse commit order, each inverted). Returns ok=false and a
// nil slice if already at the root — "not moved", no error.
func (t *Tree) Undo() (mods []Modification, ok bool) {
	if t.current.Parent == nil {
		return nil, false
	}
	src := t.current.Group.Mods
	inv := make([]Modification, len(src))
	for i, m := range src {
		inv[len(src)-1-i] = m.Inverse()
	}
	t.current = t.current.Parent
	return inv, true
}

// Redo moves to the most-recently-created child of the current node, if
// any, and returns that child's modifications in commit order. Returns
// ok=false if the current node is a leaf.
func (t *Tree) Redo() (mods []Modification, ok bool) {
	children := t.current.Children
	if len(children) == 0 {
		return nil, false
	}
	target := children[len(children)-1]
	t.current = target
	fwd := make([]Modification, len(target.Group.Mods))
	copy(fwd, target.Group.Mods)
	return fwd, true
}

// Current returns the node the tree cursor currently points at.
func (t *Tree) Current() *Node { return t.current }

// Root returns the tree's root node.
func (t *Tree) Root() *Node { return t.root }

// CanUndo reports whether Undo would move the cursor.
func (t *Tree) CanUndo() bool { return t.current.Parent != nil }

// CanRedo reports whether Redo would move the cursor.
func (t *Tree) CanRedo() bool { return len(t.current.Children) > 0 }
