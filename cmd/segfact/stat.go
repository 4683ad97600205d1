package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/segfact/render"
	sent "github.com/revelaction/segfact/sentence"
	"github.com/revelaction/segfact/stat"
)

func statCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "print doc statistics",
		ArgsUsage: "<doc id | doc file>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "sentence", Value: -1, Usage: "only this sentence"},
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

			if sentId := c.Int("sentence"); sentId >= 0 {
				if sentId >= len(doc.Sentences) {
					return fmt.Errorf("sentence index %d out of bounds (doc has %d sentences)", sentId, len(doc.Sentences))
				}
				doc = sent.Doc{Id: doc.Id, Title: doc.Title, Sentences: doc.Sentences[sentId : sentId+1]}
			}

			hdl := stat.NewHandler()
			if err := hdl.Aggregate(doc); err != nil {
				return err
			}

			render.NewRenderer(ui.Out).Stats(hdl.Get())
			return nil
		},
	}
}
