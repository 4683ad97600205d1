package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/segfact/render"
	sent "github.com/revelaction/segfact/sentence"
)

func docCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "doc",
		Usage:     "print the sentences of a doc",
		ArgsUsage: "<doc id | doc file>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "start", Usage: "first sentence"},
			&cli.IntFlag{Name: "count", Value: -1, Usage: "number of sentences, -1 for all"},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return errors.New("expected <doc>")
			}

			var p Pool
			defer p.Close()

			doc, err := readDoc(c, &p, c.Args().First())
			if err != nil {
				return err
			}

			renderDoc(doc, DocOptions{Start: c.Int("start"), Count: c.Int("count")}, ui)
			return nil
		},
	}
}

func renderDoc(doc sent.Doc, opts DocOptions, ui UI) {
	start := opts.Start
	if start < 0 {
		start = 0
	}
	if start >= len(doc.Sentences) {
		return
	}

	sentences := doc.Sentences[start:]
	if opts.Count >= 0 && opts.Count < len(sentences) {
		sentences = sentences[:opts.Count]
	}

	r := render.NewRenderer(ui.Out)
	for i, s := range sentences {
		prefix := fmt.Sprintf("✍  %d ", start+i)
		r.Sentence(s.Tokens, prefix)
	}
}
