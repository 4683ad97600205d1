package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/segfact/render"
	"github.com/revelaction/segfact/tree"
)

func clausesCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "clauses",
		Usage:     "print the clauses of a sentence",
		ArgsUsage: "<doc> <sentence id>",
		Flags: []cli.Flag{
			punctFlag(),
			colorFlag(),
			&cli.BoolFlag{Name: "finite", Usage: "only finite clauses"},
			&cli.BoolFlag{Name: "independent", Usage: "only independent clauses"},
		},
		Action: func(c *cli.Context) error {
			var p Pool
			defer p.Close()

			s, err := readSentence(c, &p)
			if err != nil {
				return err
			}

			t, err := tree.Build(s.Tokens, !c.Bool("punct"))
			if err != nil {
				return err
			}

			clauses := t.Clauses(c.Bool("finite"))
			if c.Bool("independent") {
				clauses = t.IndependentClauses(c.Bool("finite"))
			}

			r := render.NewRenderer(ui.Out)
			r.HasColor = !c.Bool("no-color")
			r.Sentence(s.Tokens, fmt.Sprintf("✍  %d ", s.Id))
			r.Clauses(t, clauses)
			return nil
		},
	}
}
