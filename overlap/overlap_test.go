package overlap

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/revelaction/segfact/relation"
	sent "github.com/revelaction/segfact/sentence"
	"github.com/revelaction/segfact/tree"
)

func tok(id, head int, lemma, pos, dep string) sent.Token {
	return sent.Token{Id: id, Head: head, Text: lemma, Lemma: lemma, Pos: pos, Dep: dep}
}

// The dog ate the bone .
func dogAteBone() []sent.Token {
	return []sent.Token{
		tok(0, 1, "the", "DET", "det"),
		tok(1, 2, "dog", "NOUN", "nsubj"),
		tok(2, 2, "eat", "VERB", "ROOT"),
		tok(3, 4, "the", "DET", "det"),
		tok(4, 2, "bone", "NOUN", "obj"),
		tok(5, 2, ".", "PUNCT", "punct"),
	}
}

// The bone was eaten by the dog .
func boneWasEaten() []sent.Token {
	return []sent.Token{
		tok(0, 1, "the", "DET", "det"),
		tok(1, 3, "bone", "NOUN", "nsubj:pass"),
		tok(2, 3, "be", "AUX", "aux:pass"),
		tok(3, 3, "eat", "VERB", "ROOT"),
		tok(4, 6, "by", "ADP", "case"),
		tok(5, 6, "the", "DET", "det"),
		tok(6, 3, "dog", "NOUN", "obl:agent"),
		tok(7, 3, ".", "PUNCT", "punct"),
	}
}

// Max walked in Berlin .
func maxWalked() []sent.Token {
	return []sent.Token{
		tok(0, 1, "Max", "PROPN", "nsubj"),
		tok(1, 1, "walk", "VERB", "ROOT"),
		tok(2, 3, "in", "ADP", "case"),
		tok(3, 1, "Berlin", "PROPN", "obl"),
		tok(4, 1, ".", "PUNCT", "punct"),
	}
}

func relationsOf(t *testing.T, sentences ...[]sent.Token) relation.Relations {
	t.Helper()
	trees, err := Trees(sentences, RoleReference)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return relation.Extract(trees)
}

func TestScoreVSO(t *testing.T) {
	ref := relationsOf(t, dogAteBone())
	dis := relationsOf(t, dogAteBone())

	r := Score(ref, dis, true)
	if r.VSO != 1 {
		t.Fatalf("expected vso indicator 1, got %d", r.VSO)
	}

	if !r.Matches.VSO.Equal(relation.NewSet(relation.VSO{Verb: "eat", Subject: "dog", Object: "bone"})) {
		t.Errorf("expected vso intersection {(eat dog bone)}, got %v", r.Matches.VSO)
	}

	if r.VS != 1 || r.Noun != 1 {
		t.Errorf("expected vs and noun indicators 1, got %d %d", r.VS, r.Noun)
	}

	if r.Propn != 0 {
		t.Errorf("expected propn indicator 0, got %d", r.Propn)
	}
}

func TestScorePassivized(t *testing.T) {
	ref := relationsOf(t, maxWalked())
	dis := relationsOf(t, boneWasEaten(), dogAteBone())

	r := Score(ref, dis, true)
	if r.VSPassivized != 1 {
		t.Fatalf("expected passivized indicator 1, got %d", r.VSPassivized)
	}

	if !r.Matches.VSPassivized.Equal(relation.NewSet(relation.VS{Verb: "eat", Subject: "bone"})) {
		t.Errorf("expected passivized intersection {(eat bone)}, got %v", r.Matches.VSPassivized)
	}

	if r.VSO != 0 || r.VS != 0 || r.Noun != 0 {
		t.Errorf("expected no cross text overlap, got %d %d %d", r.VSO, r.VS, r.Noun)
	}
}

func TestScorePassivizedIsNotSymmetric(t *testing.T) {
	a := relationsOf(t, boneWasEaten(), dogAteBone())
	b := relationsOf(t, dogAteBone())

	ab := Score(a, b, true)
	ba := Score(b, a, true)

	if !ab.Matches.VSO.Equal(ba.Matches.VSO) || !ab.Matches.VS.Equal(ba.Matches.VS) {
		t.Errorf("expected vso and vs intersections to be symmetric")
	}

	if ab.VSPassivized != 0 {
		t.Errorf("expected passivized 0 when only the reference is passive, got %d", ab.VSPassivized)
	}

	if ba.VSPassivized != 1 {
		t.Errorf("expected passivized 1 when the distractor is passive, got %d", ba.VSPassivized)
	}
}

func TestScoreEmpty(t *testing.T) {
	r := Score(relation.NewRelations(), relation.NewRelations(), false)
	if r.Any() {
		t.Errorf("expected all indicators 0, got %+v", r)
	}

	if r.Matches != nil {
		t.Errorf("expected no matches")
	}

	if len(r.Map()) != 5 {
		t.Errorf("expected 5 keys, got %d", len(r.Map()))
	}
}

func TestReportMap(t *testing.T) {
	ref := relationsOf(t, dogAteBone(), maxWalked())
	dis := relationsOf(t, maxWalked())

	m := Score(ref, dis, true).Map()
	if len(m) != 10 {
		t.Fatalf("expected 10 keys, got %d", len(m))
	}

	if m[KeyPropnInd] != 1 {
		t.Errorf("expected %s 1, got %v", KeyPropnInd, m[KeyPropnInd])
	}

	propns := m[KeyPropn].([]string)
	if len(propns) != 2 || propns[0] != "Berlin" || propns[1] != "Max" {
		t.Errorf("expected [Berlin Max], got %v", propns)
	}

	vs := m[KeyVS].([][]string)
	if len(vs) != 1 || vs[0][0] != "walk" || vs[0][1] != "Max" {
		t.Errorf("expected [[walk Max]], got %v", vs)
	}

	m = Score(ref, dis, false).Map()
	if _, ok := m[KeyVS]; ok {
		t.Errorf("expected no %s key without matches", KeyVS)
	}
}

func TestReportJSON(t *testing.T) {
	ref := relationsOf(t, dogAteBone())
	dis := relationsOf(t, boneWasEaten(), dogAteBone())
	want := Score(ref, dis, true)

	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if got.VSO != want.VSO || got.VSPassivized != want.VSPassivized || got.Noun != want.Noun {
		t.Errorf("expected indicators %+v, got %+v", want, got)
	}

	if got.Matches == nil || !got.Matches.VSPassivized.Equal(want.Matches.VSPassivized) {
		t.Errorf("expected passivized matches to survive a round trip")
	}
}

func TestCompare(t *testing.T) {
	r, err := Compare([][]sent.Token{dogAteBone()}, [][]sent.Token{boneWasEaten()}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.VSO != 0 || r.Noun != 1 || r.VSPassivized != 0 {
		t.Errorf("expected vso 0, noun 1, passivized 0, got %+v", r)
	}
}

func TestCompareMalformedDistractor(t *testing.T) {
	bad := []sent.Token{
		tok(0, 0, "a", "VERB", "ROOT"),
		tok(1, 1, "b", "VERB", "ROOT"),
	}

	_, err := Compare([][]sent.Token{dogAteBone()}, [][]sent.Token{dogAteBone(), bad}, true)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var sErr *SentenceError
	if !errors.As(err, &sErr) {
		t.Fatalf("expected *SentenceError, got %T", err)
	}

	if sErr.Role != RoleDistractor || sErr.Index != 1 {
		t.Errorf("expected distractor sentence 1, got %s %d", sErr.Role, sErr.Index)
	}

	if len(sErr.Tokens) != 2 || sErr.Text() != "a b" {
		t.Errorf("expected the raw tokens of the sentence, got %q", sErr.Text())
	}

	if !errors.Is(err, tree.ErrMalformedTree) {
		t.Errorf("expected ErrMalformedTree in chain")
	}
}
