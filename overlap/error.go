package overlap

import (
	"fmt"
	"strings"

	sent "github.com/revelaction/segfact/sentence"
)

const (
	RoleReference  = "reference"
	RoleDistractor = "distractor"
)

// SentenceError is returned when a sentence of a text can not be built into
// a tree. It carries the raw tokens of the sentence for diagnosis.
type SentenceError struct {
	Role   string
	Index  int
	Tokens []sent.Token
	Err    error
}

func (e *SentenceError) Error() string {
	return fmt.Sprintf("%s sentence %d: %v", e.Role, e.Index, e.Err)
}

func (e *SentenceError) Unwrap() error {
	return e.Err
}

// Text returns the surface text of the offending sentence.
func (e *SentenceError) Text() string {
	words := make([]string, 0, len(e.Tokens))
	for _, t := range e.Tokens {
		words = append(words, t.Text)
	}
	return strings.Join(words, " ")
}
