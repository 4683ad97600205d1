// Package overlap measures how much a distractor text repeats the facts of a
// reference text.
package overlap

import (
	"github.com/revelaction/segfact/relation"
	sent "github.com/revelaction/segfact/sentence"
	"github.com/revelaction/segfact/tree"
)

// Report keys
const (
	KeyVSOInd          = "vso_intersec_ind"
	KeyVSInd           = "vs_intersec_ind"
	KeyVSPassivizedInd = "vs_passivized_intersec_ind"
	KeyNounInd         = "noun_intersec_ind"
	KeyPropnInd        = "propn_intersec_ind"
	KeyVSO             = "vso_intersec"
	KeyVS              = "vs_intersec"
	KeyVSPassivized    = "vs_passivized_intersec"
	KeyNoun            = "noun_intersec"
	KeyPropn           = "propn_intersec"
)

// Matches are the literal overlapping sets.
type Matches struct {
	VSO          relation.Set[relation.VSO]
	VS           relation.Set[relation.VS]
	VSPassivized relation.Set[relation.VS]
	Nouns        relation.Lemmas
	Propns       relation.Lemmas
}

// Report is the result of comparing a reference with a distractor.
type Report struct {
	VSO          int
	VS           int
	VSPassivized int
	Noun         int
	Propn        int

	// Matches is nil unless the literal sets were requested.
	Matches *Matches
}

// Score compares the relations of a reference text with the ones of a
// distractor text.
//
// The passivized overlap is computed inside the distractor only: a VS tuple
// of the distractor whose subject is also the object of the same verb in a
// VO tuple of the distractor.
func Score(reference, distractor relation.Relations, withMatches bool) Report {
	m := Matches{
		VSO:          reference.VSO.Intersect(distractor.VSO),
		VS:           reference.VS.Intersect(distractor.VS),
		VSPassivized: passivized(distractor),
		Nouns:        reference.Nouns.Intersect(distractor.Nouns),
		Propns:       reference.Propns.Intersect(distractor.Propns),
	}

	r := Report{
		VSO:          indicator(len(m.VSO)),
		VS:           indicator(len(m.VS)),
		VSPassivized: indicator(len(m.VSPassivized)),
		Noun:         indicator(len(m.Nouns)),
		Propn:        indicator(len(m.Propns)),
	}

	if withMatches {
		r.Matches = &m
	}

	return r
}

func passivized(r relation.Relations) relation.Set[relation.VS] {
	res := make(relation.Set[relation.VS])
	for vo := range r.VO {
		if vs := vo.Passive(); r.VS.Has(vs) {
			res.Add(vs)
		}
	}
	return res
}

func indicator(n int) int {
	if n > 0 {
		return 1
	}
	return 0
}

// Compare builds the trees of the reference and distractor sentences,
// extracts their relations and scores them.
//
// Punctuation is kept in the trees. A sentence that does not form a valid
// tree aborts the comparison with a *SentenceError carrying the sentence.
func Compare(reference, distractor [][]sent.Token, withMatches bool) (Report, error) {
	refTrees, err := Trees(reference, RoleReference)
	if err != nil {
		return Report{}, err
	}

	disTrees, err := Trees(distractor, RoleDistractor)
	if err != nil {
		return Report{}, err
	}

	return Score(relation.Extract(refTrees), relation.Extract(disTrees), withMatches), nil
}

// Trees builds the trees of the sentences of a text, keeping punctuation.
func Trees(sentences [][]sent.Token, role string) ([]*tree.Tree, error) {
	trees := make([]*tree.Tree, 0, len(sentences))
	for i, tokens := range sentences {
		t, err := tree.Build(tokens, false)
		if err != nil {
			return nil, &SentenceError{Role: role, Index: i, Tokens: tokens, Err: err}
		}
		trees = append(trees, t)
	}
	return trees, nil
}
