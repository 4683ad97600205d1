package search

import (
	"errors"

	"github.com/revelaction/segfact/match"
	sent "github.com/revelaction/segfact/sentence"
	"github.com/revelaction/segfact/storage"
)

// Search selects the strategy for finding the relation tuples matching a
// pattern in a document repository.
type Search struct {
	pattern match.Pattern
	repo    storage.DocReader
	docID   *int
}

// New creates a new Search for the pattern over the repository.
func New(p match.Pattern, dr storage.DocReader) *Search {
	return &Search{
		pattern: p,
		repo:    dr,
	}
}

// WithDocID restricts the search to a single document ID.
// If set, the single-document strategy (Read) is used instead of the indexed
// strategy (FindCandidates).
func (s *Search) WithDocID(id int) *Search {
	s.docID = &id
	return s
}

// Tuples calls onMatch for every tuple matched by the pattern, handling
// pagination. It returns the cursor to resume from.
func (s *Search) Tuples(cursor storage.Cursor, limit int, onMatch func(match.TupleMatch) error) (storage.Cursor, error) {
	// Strategy 1: Single Document (No Index)
	if s.docID != nil {
		doc, err := s.repo.Read(*s.docID)
		if err != nil {
			return cursor, err
		}
		doc.Id = *s.docID

		m := match.NewMatcher(s.pattern)
		if err := m.Match(doc); err != nil {
			return cursor, err
		}

		for _, tm := range m.Matches() {
			if err := onMatch(tm); err != nil {
				return cursor, err
			}
		}
		return cursor, nil
	}

	// Strategy 2: Find candidates (indexed search)
	lemmas := s.pattern.Lemmas()
	if len(lemmas) == 0 {
		return cursor, errors.New("pattern must contain at least one lemma for indexing")
	}

	m := match.NewMatcher(s.pattern)
	return s.repo.FindCandidates(lemmas, cursor, limit, func(c sent.Sentence) error {
		tms, err := m.MatchSentence(c)
		if err != nil {
			return err
		}
		for _, tm := range tms {
			if err := onMatch(tm); err != nil {
				return err
			}
		}
		return nil
	})
}
