package main

import (
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/segfact/overlap"
	"github.com/revelaction/segfact/render"
)

func overlapCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "overlap",
		Usage:     "score the fact overlap of a reference and a distractor doc",
		ArgsUsage: "<reference doc> <distractor doc>",
		Flags: []cli.Flag{
			jsonFlag(),
			colorFlag(),
			matchesFlag(),
			&cli.BoolFlag{Name: "store", Usage: "store the report in --report-path (doc ids only)"},
		},
		Action: func(c *cli.Context) error {
			opts, err := parseOverlapArgs(c)
			if err != nil {
				return err
			}
			return overlapDocs(opts, ui)
		},
	}
}

func overlapDocs(opts OverlapOptions, ui UI) error {
	var p Pool
	defer p.Close()

	ref, err := readDocAt(&p, opts.DocPath, opts.Reference)
	if err != nil {
		return err
	}

	dis, err := readDocAt(&p, opts.DocPath, opts.Distractor)
	if err != nil {
		return err
	}

	rep, err := overlap.Compare(ref.TokenLists(), dis.TokenLists(), opts.WithMatches)
	if err != nil {
		return err
	}

	if opts.Store {
		if err := storeReport(&p, opts, rep); err != nil {
			return err
		}
	}

	if opts.JSON {
		return render.NewJSONRenderer(ui.Out).Report(rep)
	}

	r := render.NewRenderer(ui.Out)
	r.HasColor = !opts.NoColor
	r.Report(rep)
	return nil
}

// storeReport writes the report. The doc args are ids, checked by
// parseOverlapArgs.
func storeReport(p *Pool, opts OverlapOptions, rep overlap.Report) error {
	refId, _ := strconv.Atoi(opts.Reference)
	disId, _ := strconv.Atoi(opts.Distractor)

	w, err := NewReportWriter(p, opts.ReportPath)
	if err != nil {
		return err
	}
	return w.WriteReport(refId, disId, rep)
}
