package sentence

import (
	"encoding/json"
	"fmt"
)

// spacyDoc mirrors the output of spacy `Doc.to_json()`.
type spacyDoc struct {
	Text  string `json:"text"`
	Sents []struct {
		Start int `json:"start"`
		End   int `json:"end"`
	} `json:"sents"`
	Tokens []Token `json:"tokens"`
}

// FromSpacy decodes a spacy `Doc.to_json()` document and splits its tokens
// in sentences.
//
// spacy numbers tokens and heads over the whole document. Each returned
// sentence is renumbered so that its first token has Id 0 and every Head
// points inside the same sentence. The token Text is taken from the source
// text with the (character based) start/end offsets.
func FromSpacy(data []byte) ([]Sentence, error) {
	var sd spacyDoc
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("JSON decoding error: %w", err)
	}

	text := []rune(sd.Text)

	sentences := make([]Sentence, 0, len(sd.Sents))
	for sentId, border := range sd.Sents {
		var tokens []Token
		for _, t := range sd.Tokens {
			if t.Start >= border.Start && t.End <= border.End {
				tokens = append(tokens, t)
			}
		}

		ids := make(map[int]int, len(tokens))
		for i, t := range tokens {
			ids[t.Id] = i
		}

		for i := range tokens {
			head, ok := ids[tokens[i].Head]
			if !ok {
				return nil, fmt.Errorf("sentence %d: token %d head %d is outside the sentence", sentId, tokens[i].Id, tokens[i].Head)
			}

			if tokens[i].Text == "" && tokens[i].Start >= 0 && tokens[i].End <= len(text) && tokens[i].Start <= tokens[i].End {
				tokens[i].Text = string(text[tokens[i].Start:tokens[i].End])
			}

			tokens[i].Id = i
			tokens[i].Head = head
		}

		sentences = append(sentences, Sentence{Id: sentId, Tokens: tokens})
	}

	return sentences, nil
}
