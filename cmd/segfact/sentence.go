package main

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/segfact/render"
	sent "github.com/revelaction/segfact/sentence"
)

func sentenceCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "sentence",
		Usage:     "print a sentence and its tokens",
		ArgsUsage: "<doc> <sentence id>",
		Action: func(c *cli.Context) error {
			var p Pool
			defer p.Close()

			s, err := readSentence(c, &p)
			if err != nil {
				return err
			}

			r := render.NewRenderer(ui.Out)
			r.Sentence(s.Tokens, fmt.Sprintf("✍  %d ", s.Id))
			fmt.Fprintln(ui.Out)
			fprintTokens(ui.Out, s.Tokens)
			return nil
		},
	}
}

// fprintTokens prints one token per line.
func fprintTokens(w io.Writer, tokens []sent.Token) {
	for _, token := range tokens {
		fmt.Fprintf(w, "%20q %15q %8s %6d %6d %10s %s\n", token.Text, token.Lemma, token.Pos, token.Id, token.Head, token.Dep, token.Morph)
	}
}
