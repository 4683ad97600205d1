package sentence

import "strings"

type Doc struct {
	Id int `json:"id"`

	Title string `json:"title"`

	Labels    []string   `json:"labels"`
	Sentences []Sentence `json:"sentences"`
}

// Sentence is an ordered list of tokens as emitted by the parser. The Id is
// the index of the sentence inside its Doc.
type Sentence struct {
	Id     int     `json:"id"`
	DocId  int     `json:"doc_id"`
	Tokens []Token `json:"tokens"`
}

// Library is a collection of Doc
type Library []Doc

// Token represents a word of the sentence, with POS, morphology and the
// dependency arc to its syntactic parent.
type Token struct {
	// The index of the word in the sentence, starting at 0.
	Id int `json:"id"`

	// Head is the Id of the syntactic parent in the same sentence. The root
	// token points to itself.
	Head int `json:"head"`

	// the character offsets of the token in the sentence source text.
	Start int `json:"start"`
	End   int `json:"end"`

	// Fine grained POS
	Tag string `json:"tag"`

	// Coarse (universal) POS: NOUN, PROPN, VERB...
	Pos string `json:"pos"`

	// Morph contains the `|` separated Key=Value features, f.ex.
	//
	//	Aspect=Perf|Mood=Ind|Number=Sing|Tense=Past|VerbForm=Fin
	Morph string `json:"morph"`

	// Universal Dependencies relation label
	Dep string `json:"dep"`

	// The lemma of the word
	Lemma string `json:"lemma"`

	// The unmodified word
	Text string `json:"text"`
}

// Features returns the morphological features of the token. An empty morph
// has no features.
func (t Token) Features() []string {
	if t.Morph == "" {
		return nil
	}
	return strings.Split(t.Morph, "|")
}

// HasFeature reports whether the morph contains the exact Key=Value feature.
func (t Token) HasFeature(feature string) bool {
	for _, f := range t.Features() {
		if f == feature {
			return true
		}
	}
	return false
}

// TokenLists returns the token slices of the doc sentences.
func (d Doc) TokenLists() [][]Token {
	lists := make([][]Token, len(d.Sentences))
	for i, s := range d.Sentences {
		lists[i] = s.Tokens
	}
	return lists
}

// NewDoc builds a Doc from per sentence token lists, numbering the sentences.
func NewDoc(title string, tokens [][]Token) Doc {
	doc := Doc{Title: title}
	for i, tks := range tokens {
		doc.Sentences = append(doc.Sentences, Sentence{Id: i, Tokens: tks})
	}
	return doc
}
