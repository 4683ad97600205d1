// Package relation extracts verb-subject-object relations from dependency
// trees.
package relation

import (
	"encoding/json"

	"github.com/revelaction/segfact/tree"
)

var subjDeps = map[string]bool{
	"nsubj":       true,
	"csubj":       true,
	"nsubj:pass":  true,
	"csubj:pass":  true,
	"nsubj:outer": true,
	"csubj:outer": true,
}

var objDeps = map[string]bool{
	"obj":   true,
	"ccomp": true,
	"xcomp": true,
}

// VSO is a (verb, subject, object) lemma tuple.
type VSO struct {
	Verb    string
	Subject string
	Object  string
}

func (t VSO) Lemmas() []string { return []string{t.Verb, t.Subject, t.Object} }

// VS is a (verb, subject) lemma tuple.
type VS struct {
	Verb    string
	Subject string
}

func (t VS) Lemmas() []string { return []string{t.Verb, t.Subject} }

// VO is a (verb, object) lemma tuple.
type VO struct {
	Verb   string
	Object string
}

func (t VO) Lemmas() []string { return []string{t.Verb, t.Object} }

// Passive returns the VS tuple that has the object in the subject role,
// as in a passive paraphrase.
func (t VO) Passive() VS { return VS{Verb: t.Verb, Subject: t.Object} }

// Conjuncts returns the conj chain below the node at position i: its conj
// children, their conj children and so on.
func Conjuncts(t *tree.Tree, i int) []*tree.Node {
	var conjs []*tree.Node
	n := t.Node(i)
	if n == nil {
		return nil
	}

	for _, c := range n.Children {
		child := t.Node(c)
		if child == nil || child.Dep != "conj" {
			continue
		}
		conjs = append(conjs, child)
		conjs = append(conjs, Conjuncts(t, c)...)
	}
	return conjs
}

// Subjects returns the subjects of the node at position i, coordinated
// subjects included.
func Subjects(t *tree.Tree, i int) []*tree.Node {
	return arguments(t, i, subjDeps)
}

// Objects returns the objects (obj, ccomp, xcomp) of the node at position i,
// coordinated objects included.
func Objects(t *tree.Tree, i int) []*tree.Node {
	return arguments(t, i, objDeps)
}

func arguments(t *tree.Tree, i int, deps map[string]bool) []*tree.Node {
	var args []*tree.Node
	n := t.Node(i)
	if n == nil {
		return nil
	}

	for _, c := range n.Children {
		child := t.Node(c)
		if child == nil || !deps[child.Dep] {
			continue
		}
		args = append(args, child)
		args = append(args, Conjuncts(t, c)...)
	}
	return args
}

// Relations are the relation tuples and noun lemmas of a text.
type Relations struct {
	VSO    Set[VSO]
	VS     Set[VS]
	VO     Set[VO]
	Nouns  Lemmas
	Propns Lemmas
}

func NewRelations() Relations {
	return Relations{
		VSO:    make(Set[VSO]),
		VS:     make(Set[VS]),
		VO:     make(Set[VO]),
		Nouns:  make(Lemmas),
		Propns: make(Lemmas),
	}
}

// Add extracts the relations of one sentence tree into r.
func (r Relations) Add(t *tree.Tree) {
	for _, n := range t.Nodes() {
		switch n.Pos {
		case "NOUN":
			r.Nouns.Add(n.Lemma)
			continue
		case "PROPN":
			r.Propns.Add(n.Lemma)
			continue
		case "VERB":
		default:
			continue
		}

		subjs := Subjects(t, n.Index)
		objs := Objects(t, n.Index)

		for _, s := range subjs {
			r.VS.Add(VS{Verb: n.Lemma, Subject: s.Lemma})
			for _, o := range objs {
				r.VSO.Add(VSO{Verb: n.Lemma, Subject: s.Lemma, Object: o.Lemma})
			}
		}

		for _, o := range objs {
			r.VO.Add(VO{Verb: n.Lemma, Object: o.Lemma})
		}
	}
}

// Extract aggregates the relations of all the sentence trees of a text.
func Extract(trees []*tree.Tree) Relations {
	r := NewRelations()
	for _, t := range trees {
		r.Add(t)
	}
	return r
}

// IsEmpty reports whether no relation and no noun was extracted.
func (r Relations) IsEmpty() bool {
	return len(r.VSO) == 0 && len(r.VS) == 0 && len(r.VO) == 0 && len(r.Nouns) == 0 && len(r.Propns) == 0
}

type relationsJSON struct {
	VSO    json.RawMessage `json:"vso"`
	VS     json.RawMessage `json:"vs"`
	VO     json.RawMessage `json:"vo"`
	Nouns  []string        `json:"nouns"`
	Propns []string        `json:"propns"`
}

func (r Relations) MarshalJSON() ([]byte, error) {
	var (
		out relationsJSON
		err error
	)

	if out.VSO, err = MarshalTuples(r.VSO); err != nil {
		return nil, err
	}
	if out.VS, err = MarshalTuples(r.VS); err != nil {
		return nil, err
	}
	if out.VO, err = MarshalTuples(r.VO); err != nil {
		return nil, err
	}
	out.Nouns = SortedLemmas(r.Nouns)
	out.Propns = SortedLemmas(r.Propns)

	return json.Marshal(out)
}
