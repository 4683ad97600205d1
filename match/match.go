package match

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/revelaction/segfact/relation"
	sent "github.com/revelaction/segfact/sentence"
	"github.com/revelaction/segfact/tree"
)

// Wildcard matches any lemma.
const Wildcard = "_"

// Tuple kinds
const (
	KindVSO = "vso"
	KindVS  = "vs"
	KindVO  = "vo"
)

// Item matches one lemma of a relation tuple.
//
//	_        any lemma
//	eat      the lemma eat
//	eat|bite eat or bite
//	!eat     any lemma but eat
type Item string

// Pattern is a sequence of items: verb [subject [object]].
//
// A pattern of one or two items is matched against both VS and VO tuples, a
// pattern of three items against VSO tuples.
type Pattern []Item

func (p Pattern) String() string {
	sl := make([]string, len(p))
	for i, it := range p {
		sl[i] = string(it)
	}
	return strings.Join(sl, " ")
}

// Parse parses the user input and converts it to a Pattern.
func Parse(args []string) (Pattern, error) {
	if len(args) == 0 {
		return nil, errors.New("pattern needs at least a verb")
	}

	if len(args) > 3 {
		return nil, errors.New("pattern accepts at most three items: verb subject object")
	}

	p := make(Pattern, 0, len(args))
	for _, arg := range args {
		if arg == "" || arg == "!" {
			return nil, errors.New("empty pattern item")
		}
		p = append(p, Item(arg))
	}
	return p, nil
}

// Lemmas returns the unique positive lemmas of the pattern, suitable for
// indexed candidate retrieval. Wildcards, alternatives and negations are
// excluded; they are handled later by the Matcher.
func (p Pattern) Lemmas() []string {
	seen := make(map[string]bool)
	var lemmas []string
	for _, it := range p {
		s := string(it)
		if s == Wildcard || strings.HasPrefix(s, "!") || strings.Contains(s, "|") {
			continue
		}
		if !seen[s] {
			seen[s] = true
			lemmas = append(lemmas, s)
		}
	}
	return lemmas
}

func (it Item) Match(lemma string) bool {
	s := string(it)
	if s == Wildcard {
		return true
	}

	if strings.HasPrefix(s, "!") {
		return strings.TrimPrefix(s, "!") != lemma
	}

	// optimistically try to split possible OR values
	// If no "|" just one value
	for _, orValue := range strings.Split(s, "|") {
		if orValue == lemma {
			return true
		}
	}

	return false
}

func (p Pattern) matchLemmas(lemmas []string) bool {
	if len(p) > len(lemmas) {
		return false
	}
	for i, it := range p {
		if !it.Match(lemmas[i]) {
			return false
		}
	}
	return true
}

// TupleMatch is a relation tuple of a sentence matched by a Pattern.
type TupleMatch struct {
	DocId      int      `json:"doc_id"`
	SentenceId int      `json:"sentence_id"`
	Kind       string   `json:"kind"`
	Lemmas     []string `json:"lemmas"`

	// Sentence is the matched sentence. Used by the renderer.
	Sentence []sent.Token `json:"-"`
}

// SentenceError is returned when a sentence can not be built into a tree.
// It carries the raw tokens of the sentence for diagnosis.
type SentenceError struct {
	DocId      int
	SentenceId int
	Tokens     []sent.Token
	Err        error
}

func (e *SentenceError) Error() string {
	return fmt.Sprintf("doc %d sentence %d: %v", e.DocId, e.SentenceId, e.Err)
}

func (e *SentenceError) Unwrap() error {
	return e.Err
}

// Matcher matches sentences (or a set of Docs) against a Pattern.
// A set of Docs can be matched by repeated Match calls to the Matcher.
type Matcher struct {
	Pattern Pattern

	matches []TupleMatch
}

func NewMatcher(p Pattern) *Matcher {
	return &Matcher{Pattern: p}
}

// MatchSentence returns the tuples of the sentence matched by the pattern.
// A sentence that does not form a tree is a *SentenceError.
func (m *Matcher) MatchSentence(s sent.Sentence) ([]TupleMatch, error) {
	tr, err := tree.Build(s.Tokens, false)
	if err != nil {
		return nil, &SentenceError{DocId: s.DocId, SentenceId: s.Id, Tokens: s.Tokens, Err: err}
	}

	r := relation.Extract([]*tree.Tree{tr})

	var res []TupleMatch
	add := func(kind string, lemmas []string) {
		if m.Pattern.matchLemmas(lemmas) {
			res = append(res, TupleMatch{DocId: s.DocId, SentenceId: s.Id, Kind: kind, Lemmas: lemmas, Sentence: s.Tokens})
		}
	}

	if len(m.Pattern) == 3 {
		for _, t := range relation.Sorted(r.VSO) {
			add(KindVSO, t.Lemmas())
		}
		return res, nil
	}

	for _, t := range relation.Sorted(r.VS) {
		add(KindVS, t.Lemmas())
	}
	for _, t := range relation.Sorted(r.VO) {
		add(KindVO, t.Lemmas())
	}
	return res, nil
}

// Match matches all the sentences of the doc and accumulates the results.
// It stops at the first malformed sentence.
func (m *Matcher) Match(doc sent.Doc) error {
	for _, s := range doc.Sentences {
		s.DocId = doc.Id
		tms, err := m.MatchSentence(s)
		if err != nil {
			return err
		}
		m.matches = append(m.matches, tms...)
	}
	return nil
}

// Matches returns the accumulated matches sorted by doc, sentence and kind.
func (m *Matcher) Matches() []TupleMatch {
	sort.SliceStable(m.matches, func(i, j int) bool {
		a, b := m.matches[i], m.matches[j]
		if a.DocId != b.DocId {
			return a.DocId < b.DocId
		}
		if a.SentenceId != b.SentenceId {
			return a.SentenceId < b.SentenceId
		}
		return a.Kind > b.Kind
	})
	return m.matches
}
