package analyzer

import (
	"slices"
)

// Node is one module of the tree.
type Node struct {
	name     string
	file     string
	spans    []ReplacementSpan
	children map[string]*Node
	order    []*Node
}

func newNode(name string) *Node {
	return &Node{name: name, children: make(map[string]*Node)}
}

// Name is the node's last path segment; empty for the root.
func (n *Node) Name() string { return n.name }

// File is the backing source file, or "" for a node created only as an
// intermediate segment.
func (n *Node) File() string { return n.file }

// Spans returns the replacement spans of the node's file.
func (n *Node) Spans() []ReplacementSpan { return n.spans }

// Children returns the child modules in discovery order.
func (n *Node) Children() []*Node { return n.order }

func (n *Node) child(name string) *Node {
	if c, ok := n.children[name]; ok {
		return c
	}
	c := newNode(name)
	n.children[name] = c
	n.order = append(n.order, c)
	return c
}

// Tree records the discovered modules and the edits pending for their
// files. It is written during analysis only.
type Tree struct {
	root *Node
}

func NewTree() *Tree {
	return &Tree{root: newNode("")}
}

func (t *Tree) Root() *Node { return t.root }

// Lookup returns the node at path, or nil.
func (t *Tree) Lookup(path ModulePath) *Node {
	n := t.root
	for _, seg := range path {
		if n = n.children[seg]; n == nil {
			return nil
		}
	}
	return n
}

// Register binds file to the module at path, creating missing nodes. If the
// module already has a file, nothing changes and that file is returned
// with seen set; callers skip analysis in that case.
func (t *Tree) Register(path ModulePath, file string) (existing string, seen bool) {
	n := t.root
	for _, seg := range path {
		n = n.child(seg)
	}
	if n.file != "" {
		return n.file, true
	}
	n.file = file
	return "", false
}

// AppendSpan records span against the module at path. It reports false if
// no such module exists.
func (t *Tree) AppendSpan(path ModulePath, span ReplacementSpan) bool {
	n := t.Lookup(path)
	if n == nil {
		return false
	}
	n.spans = append(n.spans, span)
	return true
}

// Finalize sorts every node's spans by start position.
func (t *Tree) Finalize() {
	var sortNode func(n *Node)
	sortNode = func(n *Node) {
		slices.SortStableFunc(n.spans, func(a, b ReplacementSpan) int {
			switch {
			case a.Start.Before(b.Start):
				return -1
			case b.Start.Before(a.Start):
				return 1
			}
			return 0
		})
		for _, c := range n.order {
			sortNode(c)
		}
	}
	sortNode(t.root)
}

// Walk calls fn for every node depth-first, parents before children.
func (t *Tree) Walk(fn func(path ModulePath, n *Node) error) error {
	var walk func(path ModulePath, n *Node) error
	walk = func(path ModulePath, n *Node) error {
		if err := fn(path, n); err != nil {
			return err
		}
		for _, c := range n.order {
			if err := walk(join(path, c.name), c); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(nil, t.root)
}
