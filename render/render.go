package render

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/revelaction/segfact/match"
	"github.com/revelaction/segfact/overlap"
	"github.com/revelaction/segfact/relation"
	sent "github.com/revelaction/segfact/sentence"
	"github.com/revelaction/segfact/stat"
	"github.com/revelaction/segfact/tree"
)

const (
	partialOffset = 6
	Defaultformat = "all"
)

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"

	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

func SupportedFormats() []string {
	return []string{"all", "part", "lemma"}
}

type Renderer struct {
	W io.Writer

	HasColor bool

	HasPrefix bool

	// Format determines how matched sentences are printed
	//
	// all: print all sentence
	// part: print the surroundings of the tuple words, cut the rest.
	// lemma: print only the tuple lemmas
	Format string

	DocNames map[int]string
}

// NewRenderer creates a Renderer writing to w. A nil w writes to stdout.
func NewRenderer(w io.Writer) *Renderer {
	if w == nil {
		w = os.Stdout
	}
	return &Renderer{W: w, Format: Defaultformat, DocNames: map[int]string{}}
}

func (r *Renderer) AddDocName(docId int, name string) {
	r.DocNames[docId] = name
}

// Matches prints one line per matched tuple.
func (r *Renderer) Matches(matches []match.TupleMatch) {
	for _, tm := range matches {
		highlight := tupleTokens(tm)

		var text string
		switch r.Format {
		case "part":
			text = r.syntagma(tm.Sentence, highlight)
		case "lemma":
			text = strings.Join(tm.Lemmas, " ")
		default:
			text = r.sentence(tm.Sentence, highlight)
		}

		fmt.Fprintf(r.W, "%s%s\n", r.buildPrefix(tm), strings.ReplaceAll(text, "\n", " "))
	}
}

// tupleTokens returns the ids of the tokens whose lemma is part of the tuple.
func tupleTokens(tm match.TupleMatch) map[int]bool {
	ids := map[int]bool{}
	for _, t := range tm.Sentence {
		for _, l := range tm.Lemmas {
			if t.Lemma == l {
				ids[t.Id] = true
			}
		}
	}
	return ids
}

func (r *Renderer) Sentence(s []sent.Token, prefix string) {
	fmt.Fprintf(r.W, "%s%s\n", prefix, r.SentenceString(s))
}

func (r *Renderer) SentenceString(s []sent.Token) string {
	return strings.ReplaceAll(r.sentence(s, nil), "\n", " ")
}

// sentence rebuilds the text of the sentence from the character offsets of
// the tokens. Tokens without offsets are separated by a space.
func (r *Renderer) sentence(sentence []sent.Token, highlight map[int]bool) string {
	var str strings.Builder
	lastEnd := -1
	for i, token := range sentence {
		if token.End <= token.Start {
			if i > 0 {
				str.WriteString(" ")
			}
			str.WriteString(r.colorToken(token, highlight))
			continue
		}

		if lastEnd >= 0 {
			// parts of a multi token word share the offsets of the word
			if token.Start < lastEnd {
				continue
			}
			str.WriteString(strings.Repeat(" ", token.Start-lastEnd))
		}

		str.WriteString(r.colorToken(token, highlight))
		lastEnd = token.End
	}

	return str.String()
}

func (r *Renderer) syntagma(sentence []sent.Token, highlight map[int]bool) string {
	if len(highlight) == 0 {
		return r.sentence(sentence, highlight)
	}

	first, last := len(sentence), -1
	for i, t := range sentence {
		if highlight[t.Id] {
			if i < first {
				first = i
			}
			last = i
		}
	}

	if last < 0 {
		return r.sentence(sentence, highlight)
	}

	from := 0
	if first > partialOffset {
		from = first - partialOffset
	}

	to := len(sentence) - 1
	if to-last > partialOffset {
		to = last + partialOffset
	}

	return r.sentence(sentence[from:to+1], highlight)
}

func (r *Renderer) colorToken(token sent.Token, highlight map[int]bool) string {
	if !r.HasColor || !highlight[token.Id] {
		return token.Text
	}
	return Green256 + token.Text + Off
}

func (r *Renderer) buildPrefix(tm match.TupleMatch) string {
	if !r.HasPrefix {
		return ""
	}

	kind := tm.Kind
	if r.HasColor {
		kind = Yellow256 + kind + Off
	}
	return fmt.Sprintf("[%s %2d %5d %s] ✍  ", r.title(tm.DocId), tm.DocId, tm.SentenceId, kind)
}

func (r *Renderer) title(docId int) string {
	title := r.DocNames[docId]
	var part string
	if len(title) <= 20 {
		part = fmt.Sprintf("%-20s", title)
	} else {
		part = title[:20]
	}

	if !r.HasColor {
		return part
	}
	return Grey256 + part + Off
}

// Tree prints the dependency tree, one node per line, children indented
// under their head.
func (r *Renderer) Tree(t *tree.Tree) {
	var walk func(i, depth int)
	walk = func(i, depth int) {
		n := t.Node(i)
		dep := n.Dep
		if r.HasColor {
			dep = Teal + dep + Off
		}
		fmt.Fprintf(r.W, "%s%s %s %s %s\n", strings.Repeat("  ", depth), n.Text, dep, n.Lemma, n.Pos)
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(t.RootIndex(), 0)
}

// Clauses prints every clause head with the words of its simple clause.
func (r *Renderer) Clauses(t *tree.Tree, clauses []*tree.Node) {
	for _, c := range clauses {
		nodes := append(t.CollectSimple(c.Index, false), c)
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].Index < nodes[j].Index })

		words := make([]string, len(nodes))
		for i, n := range nodes {
			words[i] = n.Text
		}

		finite := " "
		if t.IsFinite(c.Index) {
			finite = "F"
		}

		head := c.Text
		if r.HasColor {
			head = Green256 + head + Off
		}
		fmt.Fprintf(r.W, "%3d %s %-8s %-12s %s\n", c.Index, finite, c.Dep, head, strings.Join(words, " "))
	}
}

// Relations prints the tuples and noun lemmas, one section per kind.
func (r *Renderer) Relations(rel relation.Relations) {
	tuples(r, "vso", relation.Sorted(rel.VSO))
	tuples(r, "vs", relation.Sorted(rel.VS))
	tuples(r, "vo", relation.Sorted(rel.VO))
	r.lemmas("nouns", relation.SortedLemmas(rel.Nouns))
	r.lemmas("propns", relation.SortedLemmas(rel.Propns))
}

func tuples[T relation.Tuple](r *Renderer, name string, ts []T) {
	fmt.Fprintf(r.W, "%s (%d)\n", r.header(name), len(ts))
	for _, t := range ts {
		fmt.Fprintf(r.W, "  (%s)\n", strings.Join(t.Lemmas(), " "))
	}
}

func (r *Renderer) lemmas(name string, ls []string) {
	fmt.Fprintf(r.W, "%s (%d)\n", r.header(name), len(ls))
	if len(ls) > 0 {
		fmt.Fprintf(r.W, "  %s\n", strings.Join(ls, " "))
	}
}

func (r *Renderer) header(name string) string {
	if !r.HasColor {
		return name
	}
	return Yellow256 + name + Off
}

// Report prints the indicators and, if present, the overlapping sets.
func (r *Renderer) Report(rep overlap.Report) {
	indicators := []struct {
		key string
		val int
	}{
		{overlap.KeyVSOInd, rep.VSO},
		{overlap.KeyVSInd, rep.VS},
		{overlap.KeyVSPassivizedInd, rep.VSPassivized},
		{overlap.KeyNounInd, rep.Noun},
		{overlap.KeyPropnInd, rep.Propn},
	}

	for _, ind := range indicators {
		val := fmt.Sprint(ind.val)
		if r.HasColor && ind.val == 1 {
			val = Red + val + Off
		}
		fmt.Fprintf(r.W, "%-28s %s\n", ind.key, val)
	}

	if rep.Matches == nil {
		return
	}

	m := rep.Matches
	tuples(r, overlap.KeyVSO, relation.Sorted(m.VSO))
	tuples(r, overlap.KeyVS, relation.Sorted(m.VS))
	tuples(r, overlap.KeyVSPassivized, relation.Sorted(m.VSPassivized))
	r.lemmas(overlap.KeyNoun, relation.SortedLemmas(m.Nouns))
	r.lemmas(overlap.KeyPropn, relation.SortedLemmas(m.Propns))
}

// Stats prints the doc statistics.
func (r *Renderer) Stats(s stat.Stats) {
	fmt.Fprintf(r.W, "Num sentences %d, num tokens %d, num tokens per sentence %d\n", s.NumSentences, s.NumTokens, s.TokensPerSentenceMean)
	fmt.Fprintf(r.W, "Num clauses %d, finite %d, independent %d\n", s.NumClauses, s.NumFiniteClauses, s.NumIndependentClauses)
	fmt.Fprintf(r.W, "Num verbs %d, vso %d, vs %d, vo %d\n", s.NumVerbs, s.NumVSO, s.NumVS, s.NumVO)

	lengths := make([]int, 0, len(s.TokensPerSentenceDis))
	for l := range s.TokensPerSentenceDis {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	for _, l := range lengths {
		fmt.Fprintf(r.W, "%4d %s\n", l, strings.Repeat("*", s.TokensPerSentenceDis[l]))
	}
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {
	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			r.Format = supported[(i+1)%len(supported)]
			return
		}
	}
	r.Format = supported[0]
}

func (r *Renderer) NextPrefix() {
	r.HasPrefix = !r.HasPrefix
}
