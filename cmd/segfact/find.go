package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/segfact/match"
	"github.com/revelaction/segfact/render"
	"github.com/revelaction/segfact/search"
	"github.com/revelaction/segfact/storage"
)

func findCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "find",
		Usage:     "find the relation tuples matching a pattern",
		ArgsUsage: "<verb> [<subject> [<object>]]",
		Description: "Items: a lemma, _ for any lemma, a|b for alternatives, !a for any lemma but a.\n" +
			"One or two items match VS and VO tuples, three items match VSO tuples.",
		Flags: []cli.Flag{
			jsonFlag(),
			colorFlag(),
			&cli.IntFlag{Name: "doc", Usage: "search only this doc"},
			&cli.IntFlag{Name: "limit", Value: 500, Usage: "max number of tuples"},
			&cli.StringFlag{Name: "format", Value: render.Defaultformat, Usage: "all, part or lemma"},
			&cli.BoolFlag{Name: "no-prefix", Usage: "do not print the doc and sentence prefix"},
		},
		Action: func(c *cli.Context) error {
			opts, err := parseFindArgs(c)
			if err != nil {
				return err
			}
			return find(opts, ui)
		},
	}
}

func find(opts FindOptions, ui UI) error {
	var pool Pool
	defer pool.Close()

	repo, err := docRepositoryAt(&pool, opts.DocPath)
	if err != nil {
		return err
	}

	s := search.New(opts.Pattern, repo)
	if opts.Doc != nil {
		s.WithDocID(*opts.Doc)
	}

	results, err := findTuples(s, opts.Limit)
	if err != nil {
		return err
	}

	if opts.JSON {
		return render.NewJSONRenderer(ui.Out).Matches(results)
	}

	r := render.NewRenderer(ui.Out)
	r.HasColor = !opts.NoColor
	r.HasPrefix = !opts.NoPrefix
	r.Format = opts.Format

	docs, err := repo.List()
	if err != nil {
		return fmt.Errorf("failed to list docs: %w", err)
	}
	for _, d := range docs {
		r.AddDocName(d.Id, d.Title)
	}

	r.Matches(results)
	return nil
}

// findTuples pages through the search until limit tuples are found.
func findTuples(s *search.Search, limit int) ([]match.TupleMatch, error) {
	var results []match.TupleMatch
	cursor := storage.Cursor(0)
	for limit <= 0 || len(results) < limit {
		newCursor, err := s.Tuples(cursor, limit, func(tm match.TupleMatch) error {
			results = append(results, tm)
			return nil
		})
		if err != nil {
			return nil, err
		}
		if newCursor == cursor {
			break
		}
		cursor = newCursor
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
