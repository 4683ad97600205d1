// Package tree builds dependency trees from parser tokens and classifies
// their nodes as clause heads, finite or not.
//
// A Tree is an arena: nodes live in a slice indexed by their position in the
// sentence, parents and children are positions in the same slice.
package tree

import (
	sent "github.com/revelaction/segfact/sentence"
)

// NoParent is the Parent of the root node.
const NoParent = -1

// Node is one token positioned in a dependency tree.
type Node struct {
	// Index is the position of the node in its Tree.
	Index int

	Id    int
	Start int
	End   int
	Tag   string
	Pos   string
	Morph string
	Dep   string
	Lemma string
	Text  string

	// Parent is the position of the parent node, NoParent for the root.
	Parent int

	// Children are the positions of the child nodes, in token order.
	Children []int

	features []string
}

// HasFeature reports whether the node morph contains the Key=Value feature.
func (n *Node) HasFeature(feature string) bool {
	for _, f := range n.features {
		if f == feature {
			return true
		}
	}
	return false
}

// Tree is the flat ordered collection of nodes of one sentence. Excluded
// tokens keep their position as nil placeholders, so that heads computed
// against the original numbering remain valid.
type Tree struct {
	nodes []*Node
	root  int
}

// Build converts the tokens of a sentence into a Tree.
//
// The Head of every token is the position of its parent in tokens, or its
// own position for the root. If excludePunct is true, tokens with the punct
// relation become placeholders and are not linked.
func Build(tokens []sent.Token, excludePunct bool) (*Tree, error) {
	t := &Tree{
		nodes: make([]*Node, len(tokens)),
		root:  NoParent,
	}

	// Create all nodes first
	for i, tk := range tokens {
		if excludePunct && tk.Dep == "punct" {
			continue
		}

		t.nodes[i] = &Node{
			Index:    i,
			Id:       tk.Id,
			Start:    tk.Start,
			End:      tk.End,
			Tag:      tk.Tag,
			Pos:      tk.Pos,
			Morph:    tk.Morph,
			Dep:      tk.Dep,
			Lemma:    tk.Lemma,
			Text:     tk.Text,
			Parent:   NoParent,
			features: tk.Features(),
		}
	}

	// Link children to parents
	for i, tk := range tokens {
		if t.nodes[i] == nil {
			continue
		}

		head := tk.Head
		switch {
		case head == i:
			if t.root != NoParent {
				return nil, &MalformedTreeError{Reason: "multiple roots", Index: i, Head: head}
			}
			t.root = i
			continue
		case head < 0 || head >= len(tokens):
			return nil, &MalformedTreeError{Reason: "head out of range", Index: i, Head: head}
		case t.nodes[head] == nil:
			return nil, &MalformedTreeError{Reason: "head is an excluded token", Index: i, Head: head}
		}

		t.nodes[head].Children = append(t.nodes[head].Children, i)
		t.nodes[i].Parent = head
	}

	if t.root == NoParent {
		return nil, &MalformedTreeError{Reason: "no root", Index: NoParent, Head: NoParent}
	}

	if err := t.checkAcyclic(); err != nil {
		return nil, err
	}

	return t, nil
}

// checkAcyclic verifies that every node reaches the root following parents.
func (t *Tree) checkAcyclic() error {
	// 0 unvisited, 1 in current path, 2 reaches root
	state := make([]uint8, len(t.nodes))
	state[t.root] = 2

	for i, n := range t.nodes {
		if n == nil || state[i] == 2 {
			continue
		}

		var path []int
		cur := i
		for state[cur] == 0 {
			state[cur] = 1
			path = append(path, cur)
			cur = t.nodes[cur].Parent
		}

		if state[cur] == 1 {
			return &MalformedTreeError{Reason: "cycle", Index: cur, Head: t.nodes[cur].Parent}
		}

		for _, p := range path {
			state[p] = 2
		}
	}

	return nil
}

// Len returns the number of positions, placeholders included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node at position i, nil for placeholders.
func (t *Tree) Node(i int) *Node {
	if i < 0 || i >= len(t.nodes) {
		return nil
	}
	return t.nodes[i]
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.nodes[t.root]
}

// RootIndex returns the position of the root node.
func (t *Tree) RootIndex() int {
	return t.root
}

// Nodes returns the non placeholder nodes in token order.
func (t *Tree) Nodes() []*Node {
	nodes := make([]*Node, 0, len(t.nodes))
	for _, n := range t.nodes {
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Parent returns the parent node of the node at position i, nil for the
// root.
func (t *Tree) Parent(i int) *Node {
	n := t.Node(i)
	if n == nil || n.Parent == NoParent {
		return nil
	}
	return t.nodes[n.Parent]
}

// Ancestors returns the parents of the node at position i, from its parent
// up to the root.
func (t *Tree) Ancestors(i int) []*Node {
	var ancestors []*Node
	for p := t.Parent(i); p != nil; p = t.Parent(p.Index) {
		ancestors = append(ancestors, p)
	}
	return ancestors
}
