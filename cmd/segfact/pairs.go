package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/segfact/batch"
	"github.com/revelaction/segfact/stream"
)

func pairsCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "pairs",
		Usage:     "score JSONL (reference, distractor) pairs in parallel",
		ArgsUsage: "<pairs.jsonl[.gz] | ->",
		Description: "Input lines: {\"id\": ..., \"reference\": [[token...]...], \"distractor\": [[token...]...]}\n" +
			"Output lines: {\"id\": ..., \"report\": {...}} or {\"id\": ..., \"error\": ...}",
		Flags: []cli.Flag{
			matchesFlag(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file, stdout if empty"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "parallel workers, 0 for the number of CPUs"},
			&cli.BoolFlag{Name: "fail-fast", Usage: "stop on the first failing pair"},
			&cli.BoolFlag{Name: "progress", Usage: "show a progress bar on stderr"},
		},
		Action: func(c *cli.Context) error {
			opts, err := parsePairsArgs(c)
			if err != nil {
				return err
			}
			return scorePairs(c.Context, opts, ui)
		},
	}
}

func scorePairs(ctx context.Context, opts PairsOptions, ui UI) error {
	r, err := stream.Open[batch.Pair](opts.From, nil)
	if err != nil {
		return err
	}
	defer r.Close()

	pairs, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read pairs: %w", err)
	}

	bopts := batch.Options{
		Workers:  opts.Workers,
		Matches:  opts.Matches,
		FailFast: opts.FailFast,
	}

	var p *uiprogress.Progress
	if opts.Progress && len(pairs) > 0 {
		var bar *uiprogress.Bar
		p, bar = newProgress(ui.Err, len(pairs))
		bopts.Progress = func(int) { bar.Incr() }
	}

	results, err := batch.Run(ctx, pairs, bopts)
	if p != nil {
		p.Stop()
	}
	if err != nil {
		return err
	}

	out := ui.Out
	if opts.Out != "" {
		f, err := os.Create(opts.Out)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if err := stream.NewEmitter[batch.Result](out, nil).Emit(results); err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(ui.Err, "%d of %d pairs failed\n", failed, len(results))
	}
	return nil
}
