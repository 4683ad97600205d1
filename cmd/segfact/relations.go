package main

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/segfact/overlap"
	"github.com/revelaction/segfact/relation"
	"github.com/revelaction/segfact/render"
)

func relationsCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "relations",
		Usage:     "print the VSO, VS and VO tuples and the nouns of a doc",
		ArgsUsage: "<doc id | doc file>",
		Flags:     []cli.Flag{jsonFlag(), colorFlag()},
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

			trees, err := overlap.Trees(doc.TokenLists(), overlap.RoleReference)
			if err != nil {
				return err
			}

			rel := relation.Extract(trees)
			if c.Bool("json") {
				return render.NewJSONRenderer(ui.Out).Relations(rel)
			}

			r := render.NewRenderer(ui.Out)
			r.HasColor = !c.Bool("no-color")
			r.Relations(rel)
			return nil
		},
	}
}
