package stat

import (
	"github.com/revelaction/segfact/overlap"
	"github.com/revelaction/segfact/relation"
	sent "github.com/revelaction/segfact/sentence"
)

type Handler struct {
	stats     Stats
	relations relation.Relations
}

type Stats struct {
	NumSentences          int
	NumTokens             int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int

	NumClauses            int
	NumFiniteClauses      int
	NumIndependentClauses int
	NumVerbs              int

	NumVSO int
	NumVS  int
	NumVO  int
}

func (h *Handler) Get() Stats {
	h.stats.NumVSO = len(h.relations.VSO)
	h.stats.NumVS = len(h.relations.VS)
	h.stats.NumVO = len(h.relations.VO)
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{TokensPerSentenceDis: map[int]int{}}
	return &Handler{
		stats:     stats,
		relations: relation.NewRelations(),
	}
}

// Aggregate adds the doc to the stats. Several docs can be aggregated. It
// fails with an *overlap.SentenceError on the first malformed sentence.
func (h *Handler) Aggregate(doc sent.Doc) error {
	trees, err := overlap.Trees(doc.TokenLists(), overlap.RoleReference)
	if err != nil {
		return err
	}

	h.stats.NumSentences += len(doc.Sentences)
	for _, sentence := range doc.Sentences {
		h.stats.NumTokens += len(sentence.Tokens)
		h.stats.TokensPerSentenceDis[len(sentence.Tokens)]++
	}

	for _, t := range trees {
		h.stats.NumClauses += len(t.Clauses(false))
		h.stats.NumFiniteClauses += len(t.Clauses(true))
		h.stats.NumIndependentClauses += len(t.IndependentClauses(false))
		for _, n := range t.Nodes() {
			if n.Pos == "VERB" {
				h.stats.NumVerbs++
			}
		}
		h.relations.Add(t)
	}

	if h.stats.NumSentences > 0 {
		h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
	}

	return nil
}
