package stat

import (
	"errors"
	"testing"

	"github.com/revelaction/segfact/overlap"
	sent "github.com/revelaction/segfact/sentence"
)

func tok(id, head int, lemma, pos, dep, morph string) sent.Token {
	return sent.Token{Id: id, Head: head, Text: lemma, Lemma: lemma, Pos: pos, Dep: dep, Morph: morph}
}

// The cat chased the mouse .
func catSentence() []sent.Token {
	return []sent.Token{
		tok(0, 1, "the", "DET", "det", ""),
		tok(1, 2, "cat", "NOUN", "nsubj", ""),
		tok(2, 2, "chase", "VERB", "ROOT", "VerbForm=Fin"),
		tok(3, 4, "the", "DET", "det", ""),
		tok(4, 2, "mouse", "NOUN", "obj", ""),
		tok(5, 2, ".", "PUNCT", "punct", ""),
	}
}

// He came and she left
func cameSentence() []sent.Token {
	return []sent.Token{
		tok(0, 1, "he", "PRON", "nsubj", ""),
		tok(1, 1, "come", "VERB", "ROOT", "VerbForm=Fin"),
		tok(2, 4, "and", "CCONJ", "cc", ""),
		tok(3, 4, "she", "PRON", "nsubj", ""),
		tok(4, 1, "leave", "VERB", "conj", ""),
	}
}

func TestAggregate(t *testing.T) {
	h := NewHandler()
	doc := sent.NewDoc("d", [][]sent.Token{catSentence(), cameSentence()})
	if err := h.Aggregate(doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := h.Get()
	if s.NumSentences != 2 || s.NumTokens != 11 || s.TokensPerSentenceMean != 5 {
		t.Errorf("expected 2 sentences, 11 tokens, mean 5, got %d %d %d", s.NumSentences, s.NumTokens, s.TokensPerSentenceMean)
	}

	if s.TokensPerSentenceDis[6] != 1 || s.TokensPerSentenceDis[5] != 1 {
		t.Errorf("expected distribution {5:1 6:1}, got %v", s.TokensPerSentenceDis)
	}

	if s.NumClauses != 3 || s.NumFiniteClauses != 3 || s.NumIndependentClauses != 3 {
		t.Errorf("expected 3 clauses, 3 finite, 3 independent, got %d %d %d", s.NumClauses, s.NumFiniteClauses, s.NumIndependentClauses)
	}

	if s.NumVerbs != 3 {
		t.Errorf("expected 3 verbs, got %d", s.NumVerbs)
	}

	if s.NumVSO != 1 || s.NumVS != 3 || s.NumVO != 1 {
		t.Errorf("expected vso 1, vs 3, vo 1, got %d %d %d", s.NumVSO, s.NumVS, s.NumVO)
	}
}

func TestAggregateEmpty(t *testing.T) {
	h := NewHandler()
	if err := h.Aggregate(sent.Doc{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s := h.Get(); s.NumSentences != 0 || s.TokensPerSentenceMean != 0 {
		t.Errorf("expected empty stats, got %+v", s)
	}
}

func TestAggregateMalformed(t *testing.T) {
	h := NewHandler()
	doc := sent.NewDoc("d", [][]sent.Token{{tok(0, 3, "x", "VERB", "ROOT", "")}})

	err := h.Aggregate(doc)
	var sErr *overlap.SentenceError
	if !errors.As(err, &sErr) {
		t.Fatalf("expected *SentenceError, got %v", err)
	}
}
