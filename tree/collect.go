package tree

// The collectors walk the descendants of a node depth first, in pre-order.
//
// ignoreConj skips the conj children of the start node only: a coordinated
// clause is not nested in its coordination partner. Recursive calls never
// skip conjuncts.

// CollectAll returns all the descendants of the node at position i.
func (t *Tree) CollectAll(i int, ignoreConj bool) []*Node {
	var result []*Node
	t.collectAll(i, ignoreConj, &result)
	return result
}

func (t *Tree) collectAll(i int, ignoreConj bool, result *[]*Node) {
	n := t.Node(i)
	if n == nil {
		return
	}

	for _, c := range n.Children {
		child := t.nodes[c]
		if ignoreConj && child.Dep == "conj" {
			continue
		}

		*result = append(*result, child)
		t.collectAll(c, false, result)
	}
}

// CollectSimple returns the descendants of the node at position i that are
// not clause heads. The walk stops at clause heads.
func (t *Tree) CollectSimple(i int, ignoreConj bool) []*Node {
	var result []*Node
	t.collectSimple(i, ignoreConj, &result)
	return result
}

func (t *Tree) collectSimple(i int, ignoreConj bool, result *[]*Node) {
	n := t.Node(i)
	if n == nil {
		return
	}

	for _, c := range n.Children {
		child := t.nodes[c]
		if ignoreConj && child.Dep == "conj" {
			continue
		}

		if t.IsClause(c) {
			continue
		}

		*result = append(*result, child)
		t.collectSimple(c, false, result)
	}
}

// CollectClausal returns the descendants of the node at position i that are
// clause heads. Unlike CollectSimple the walk goes through clause heads, as
// clauses nest.
//
// finiteOnly applies to the children of the start node. Deeper levels
// always keep only the finite clauses.
func (t *Tree) CollectClausal(i int, ignoreConj, finiteOnly bool) []*Node {
	var result []*Node
	t.collectClausal(i, ignoreConj, finiteOnly, &result)
	return result
}

func (t *Tree) collectClausal(i int, ignoreConj, finiteOnly bool, result *[]*Node) {
	n := t.Node(i)
	if n == nil {
		return
	}

	for _, c := range n.Children {
		child := t.nodes[c]
		if ignoreConj && child.Dep == "conj" {
			continue
		}

		if t.IsClause(c) && (!finiteOnly || t.IsFinite(c)) {
			*result = append(*result, child)
		}

		t.collectClausal(c, false, true, result)
	}
}
