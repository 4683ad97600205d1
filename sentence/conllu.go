package sentence

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const conlluFields = 10

// ReadCoNLLU reads sentences in the CoNLL-U format.
//
// Multiword token ranges (1-2) and empty nodes (1.1) are skipped. CoNLL-U ids
// are 1-based and the root has head 0; the returned tokens are 0-based and
// the root points to itself with the ROOT label. The start/end offsets are computed over the
// reconstructed sentence text, honoring SpaceAfter=No.
func ReadCoNLLU(r io.Reader) ([]Sentence, error) {
	var (
		sentences []Sentence
		tokens    []Token
		heads     []int
		offset    int
		lineNo    int
	)

	flush := func() error {
		if len(tokens) == 0 {
			return nil
		}
		for i := range tokens {
			switch {
			case heads[i] == 0:
				tokens[i].Head = i
			case heads[i] < 0 || heads[i] > len(tokens):
				return fmt.Errorf("line %d: head %d out of range in sentence %d", lineNo, heads[i], len(sentences))
			default:
				tokens[i].Head = heads[i] - 1
			}
		}
		sentences = append(sentences, Sentence{Id: len(sentences), Tokens: tokens})
		tokens = nil
		heads = nil
		offset = 0
		return nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != conlluFields {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", lineNo, conlluFields, len(fields))
		}

		if strings.Contains(fields[0], "-") || strings.Contains(fields[0], ".") {
			continue
		}

		head, err := strconv.Atoi(fields[6])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid head %q: %w", lineNo, fields[6], err)
		}

		form := fields[1]
		start := offset
		end := start + len([]rune(form))
		offset = end
		if !strings.Contains(fields[9], "SpaceAfter=No") {
			offset++
		}

		tokens = append(tokens, Token{
			Id:    len(tokens),
			Start: start,
			End:   end,
			Text:  form,
			Lemma: underscoreEmpty(fields[2]),
			Pos:   underscoreEmpty(fields[3]),
			Tag:   underscoreEmpty(fields[4]),
			Morph: underscoreEmpty(fields[5]),
			Dep:   deprel(fields[7]),
		})
		heads = append(heads, head)
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return sentences, nil
}

// deprel converts the CoNLL-U root label to the spacy one.
func deprel(field string) string {
	if field == "root" {
		return "ROOT"
	}
	return field
}

func underscoreEmpty(field string) string {
	if field == "_" {
		return ""
	}
	return field
}
