package query

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/segfact/match"
	"github.com/revelaction/segfact/overlap"
	"github.com/revelaction/segfact/relation"
	"github.com/revelaction/segfact/render"
	"github.com/revelaction/segfact/search"
	"github.com/revelaction/segfact/storage"
)

const (
	completionThreshold = 2

	// limit of matched tuples per pattern query
	matchLimit = 2000

	batchSize = 500
)

// Commands of the prompt. Any other input is a relation pattern.
const (
	cmdQuit    = "quit"
	cmdOverlap = "overlap"
	cmdRel     = "rel"
)

type Handler struct {
	DocRepo  storage.DocReader
	Renderer *render.Renderer

	// Lemmas is the vocabulary used for completion.
	Lemmas []string

	// WithMatches adds the overlapping sets to overlap reports.
	WithMatches bool
}

func NewHandler(dr storage.DocReader, r *render.Renderer, lemmas []string) *Handler {
	sorted := append([]string(nil), lemmas...)
	sort.Strings(sorted)
	return &Handler{
		DocRepo:  dr,
		Renderer: r,
		Lemmas:   sorted,
	}
}

func (h *Handler) Run() error {
	fmt.Fprintln(h.Renderer.W, "🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, 🔧 overlap <ref> <dis>, rel <doc>, quit")

	history := []string{}

	for {
		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("segfact query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.Renderer.W, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintf(h.Renderer.W, "Prefix set to %t\n", h.Renderer.HasPrefix)
				}}),
		)

		if strings.TrimSpace(in) == cmdQuit {
			return nil
		}

		history = append(history, in)
		if err := h.Exec(in); err != nil {
			fmt.Fprintf(h.Renderer.W, "Error: %v\n", err)
		}
	}
}

// Exec runs one line of input.
func (h *Handler) Exec(in string) error {
	tokens := strings.Fields(in)
	if len(tokens) == 0 {
		return nil
	}

	switch tokens[0] {
	case cmdOverlap:
		ids, err := parseIds(tokens[1:], 2)
		if err != nil {
			return err
		}
		return h.overlap(ids[0], ids[1])
	case cmdRel:
		ids, err := parseIds(tokens[1:], 1)
		if err != nil {
			return err
		}
		return h.relations(ids[0])
	}

	p, err := match.Parse(tokens)
	if err != nil {
		return err
	}
	return h.find(p)
}

func parseIds(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d doc ids, got %d", n, len(args))
	}

	ids := make([]int, n)
	for i, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid doc id %q", a)
		}
		ids[i] = id
	}
	return ids, nil
}

func (h *Handler) overlap(refId, disId int) error {
	ref, err := h.DocRepo.Read(refId)
	if err != nil {
		return err
	}

	dis, err := h.DocRepo.Read(disId)
	if err != nil {
		return err
	}

	rep, err := overlap.Compare(ref.TokenLists(), dis.TokenLists(), h.WithMatches)
	if err != nil {
		var sErr *overlap.SentenceError
		if errors.As(err, &sErr) {
			fmt.Fprintf(h.Renderer.W, "✍  %s\n", sErr.Text())
		}
		return err
	}

	h.Renderer.Report(rep)
	return nil
}

func (h *Handler) relations(docId int) error {
	doc, err := h.DocRepo.Read(docId)
	if err != nil {
		return err
	}

	trees, err := overlap.Trees(doc.TokenLists(), overlap.RoleReference)
	if err != nil {
		return err
	}

	h.Renderer.Relations(relation.Extract(trees))
	return nil
}

func (h *Handler) find(p match.Pattern) error {
	docList, err := h.DocRepo.List()
	if err != nil {
		return fmt.Errorf("failed to list docs: %w", err)
	}
	for _, d := range docList {
		h.Renderer.AddDocName(d.Id, d.Title)
	}

	var results []match.TupleMatch
	s := search.New(p, h.DocRepo)
	cursor := storage.Cursor(0)
	for len(results) < matchLimit {
		newCursor, err := s.Tuples(cursor, batchSize, func(tm match.TupleMatch) error {
			results = append(results, tm)
			return nil
		})
		if err != nil {
			return err
		}
		if newCursor == cursor {
			break
		}
		cursor = newCursor
	}

	h.Renderer.Matches(results)
	return nil
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{}
	befCursor := in.TextBeforeCursor()
	if befCursor == "" {
		return s
	}

	tokens := strings.Split(befCursor, " ")
	if len(tokens) == 1 {
		for _, c := range []string{cmdOverlap, cmdRel, cmdQuit} {
			if strings.HasPrefix(c, tokens[0]) {
				s = append(s, prompt.Suggest{Text: c, Description: "🔧"})
			}
		}
	}

	if tokens[0] == cmdOverlap || tokens[0] == cmdRel {
		return s
	}

	word := in.GetWordBeforeCursor()
	word = strings.TrimPrefix(word, "!")
	if len(word) < completionThreshold {
		return s
	}

	return append(s, h.completeLemma(word)...)
}

func (h *Handler) completeLemma(prefix string) []prompt.Suggest {
	var s []prompt.Suggest
	i := sort.SearchStrings(h.Lemmas, prefix)
	for ; i < len(h.Lemmas) && strings.HasPrefix(h.Lemmas[i], prefix); i++ {
		s = append(s, prompt.Suggest{Text: h.Lemmas[i]})
	}
	return s
}

// Vocabulary returns the unique verb and noun lemmas of the docs, the ones
// that can appear in a relation tuple.
func Vocabulary(dr storage.DocReader) ([]string, error) {
	docs, err := dr.List()
	if err != nil {
		return nil, err
	}

	seen := relation.NewSet[string]()
	for _, d := range docs {
		doc, err := dr.Read(d.Id)
		if err != nil {
			return nil, err
		}
		for _, s := range doc.Sentences {
			for _, t := range s.Tokens {
				switch t.Pos {
				case "VERB", "NOUN", "PROPN", "PRON":
					seen.Add(t.Lemma)
				}
			}
		}
	}

	return relation.SortedLemmas(seen), nil
}
