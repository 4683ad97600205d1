package tree

const featFinite = "VerbForm=Fin"

// clausalDeps are the relations that introduce a clause.
//
// xcomp is not clausal: it is non-finite in most of the UD treebanks.
var clausalDeps = map[string]bool{
	"ROOT":        true,
	"acl":         true,
	"acl:recl":    true,
	"advcl":       true,
	"advcl:recl":  true,
	"csubj":       true,
	"csubj:outer": true,
	"csubj:pass":  true,
	"ccomp":       true,
}

// finiteSubjDeps are the subject relations that make a clause finite.
var finiteSubjDeps = map[string]bool{
	"nsubj":      true,
	"nsubj:pass": true,
	"csubj":      true,
	"csubj:pass": true,
}

// IsClausalDep reports whether dep introduces a clause.
func IsClausalDep(dep string) bool {
	return clausalDeps[dep]
}

// IsClause reports whether the node at position i heads a clause: its
// relation is clausal, or it is a conjunct of a clausal node.
func (t *Tree) IsClause(i int) bool {
	n := t.Node(i)
	if n == nil {
		return false
	}

	if clausalDeps[n.Dep] {
		return true
	}

	p := t.Parent(i)
	return p != nil && n.Dep == "conj" && clausalDeps[p.Dep]
}

// IsFinite reports whether the node at position i is finite. The checks are
// applied in order:
//
//  1. the node morph has VerbForm=Fin
//  2. a direct child is a subject (nsubj, nsubj:pass, csubj, csubj:pass)
//  3. a simple (non clausal) dependent has VerbForm=Fin, f.ex. an auxiliary
func (t *Tree) IsFinite(i int) bool {
	n := t.Node(i)
	if n == nil {
		return false
	}

	if n.HasFeature(featFinite) {
		return true
	}

	for _, c := range n.Children {
		if finiteSubjDeps[t.nodes[c].Dep] {
			return true
		}
	}

	for _, d := range t.CollectSimple(i, true) {
		if d.HasFeature(featFinite) {
			return true
		}
	}

	return false
}

// Clauses returns the clause heads of the tree in token order. If finiteOnly
// is true only the finite ones are returned.
func (t *Tree) Clauses(finiteOnly bool) []*Node {
	var clauses []*Node
	for i, n := range t.nodes {
		if n == nil || !t.IsClause(i) {
			continue
		}

		if finiteOnly && !t.IsFinite(i) {
			continue
		}

		clauses = append(clauses, n)
	}
	return clauses
}

// IndependentClauses returns the root and its direct conjuncts. If
// finiteOnly is true only the finite ones are returned.
func (t *Tree) IndependentClauses(finiteOnly bool) []*Node {
	candidates := []int{t.root}
	for _, c := range t.Root().Children {
		if t.nodes[c].Dep == "conj" {
			candidates = append(candidates, c)
		}
	}

	clauses := make([]*Node, 0, len(candidates))
	for _, c := range candidates {
		if finiteOnly && !t.IsFinite(c) {
			continue
		}
		clauses = append(clauses, t.nodes[c])
	}
	return clauses
}
