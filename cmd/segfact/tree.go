package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/segfact/render"
	"github.com/revelaction/segfact/tree"
)

func treeCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "tree",
		Usage:     "print the dependency tree of a sentence",
		ArgsUsage: "<doc> <sentence id>",
		Flags:     []cli.Flag{punctFlag(), colorFlag()},
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

			r := render.NewRenderer(ui.Out)
			r.HasColor = !c.Bool("no-color")
			r.Tree(t)
			return nil
		},
	}
}
