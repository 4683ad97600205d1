package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/segfact/query"
	"github.com/revelaction/segfact/render"
	"github.com/revelaction/segfact/storage"
)

func queryCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "interactive prompt: patterns, overlap <ref> <dis>, rel <doc>",
		Flags: []cli.Flag{
			colorFlag(),
			matchesFlag(),
			&cli.BoolFlag{Name: "no-prefix", Usage: "do not print the doc and sentence prefix"},
			&cli.StringFlag{Name: "format", Value: render.Defaultformat, Usage: "all, part or lemma"},
		},
		Action: func(c *cli.Context) error {
			return runQuery(parseQueryArgs(c), ui)
		},
	}
}

func runQuery(opts QueryOptions, ui UI) error {
	var p Pool
	defer p.Close()

	repo, err := docRepositoryAt(&p, opts.DocPath)
	if err != nil {
		return err
	}

	if pl, ok := repo.(storage.Preloader); ok {
		if err := preload(pl, ui); err != nil {
			return err
		}
	}

	lemmas, err := query.Vocabulary(repo)
	if err != nil {
		return err
	}

	r := render.NewRenderer(ui.Out)
	r.HasColor = !opts.NoColor
	r.HasPrefix = !opts.NoPrefix
	r.Format = opts.Format

	h := query.NewHandler(repo, r, lemmas)
	h.WithMatches = opts.WithMatches
	return h.Run()
}
