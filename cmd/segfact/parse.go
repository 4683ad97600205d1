package main

import (
	"errors"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/segfact/match"
)

// Option structs for subcommands that have flags
type DocOptions struct {
	Start int
	Count int
}

type FindOptions struct {
	Pattern  match.Pattern
	Doc      *int // nil = all docs
	Limit    int
	NoColor  bool
	NoPrefix bool
	Format   string
	JSON     bool
	DocPath  string
}

type QueryOptions struct {
	NoColor     bool
	NoPrefix    bool
	WithMatches bool
	Format      string
	DocPath     string
}

type OverlapOptions struct {
	Reference   string
	Distractor  string
	WithMatches bool
	Store       bool
	NoColor     bool
	JSON        bool
	DocPath     string
	ReportPath  string
}

type PairsOptions struct {
	From     string
	Out      string
	Workers  int
	Matches  bool
	FailFast bool
	Progress bool
}

type ImportDocOptions struct {
	From   string
	To     string
	Format string
	Title  string
	Labels []string
}

type ExportDocOptions struct {
	From string
	To   string
}

func parseFindArgs(c *cli.Context) (FindOptions, error) {
	p, err := match.Parse(c.Args().Slice())
	if err != nil {
		return FindOptions{}, err
	}

	opts := FindOptions{
		Pattern:  p,
		Limit:    c.Int("limit"),
		NoColor:  c.Bool("no-color"),
		NoPrefix: c.Bool("no-prefix"),
		Format:   c.String("format"),
		JSON:     c.Bool("json"),
		DocPath:  c.String("doc-path"),
	}

	if c.IsSet("doc") {
		id := c.Int("doc")
		if id < 0 {
			return opts, errors.New("doc id must be >= 0")
		}
		opts.Doc = &id
	}
	return opts, nil
}

func parseQueryArgs(c *cli.Context) QueryOptions {
	return QueryOptions{
		NoColor:     c.Bool("no-color"),
		NoPrefix:    c.Bool("no-prefix"),
		WithMatches: c.Bool("matches"),
		Format:      c.String("format"),
		DocPath:     c.String("doc-path"),
	}
}

func parseOverlapArgs(c *cli.Context) (OverlapOptions, error) {
	if c.Args().Len() != 2 {
		return OverlapOptions{}, errors.New("expected <reference doc> <distractor doc>")
	}

	opts := OverlapOptions{
		Reference:   c.Args().Get(0),
		Distractor:  c.Args().Get(1),
		WithMatches: c.Bool("matches"),
		Store:       c.Bool("store"),
		NoColor:     c.Bool("no-color"),
		JSON:        c.Bool("json"),
		DocPath:     c.String("doc-path"),
		ReportPath:  c.String("report-path"),
	}

	if opts.Store {
		if opts.ReportPath == "" {
			return opts, errors.New("no report repository, use --report-path or SEGFACT_REPORT_PATH")
		}
		for _, arg := range []string{opts.Reference, opts.Distractor} {
			if _, err := strconv.Atoi(arg); err != nil {
				return opts, errors.New("--store needs doc ids")
			}
		}
	}
	return opts, nil
}

func parsePairsArgs(c *cli.Context) (PairsOptions, error) {
	if c.Args().Len() != 1 {
		return PairsOptions{}, errors.New("expected <pairs.jsonl>")
	}

	return PairsOptions{
		From:     c.Args().First(),
		Out:      c.String("out"),
		Workers:  c.Int("workers"),
		Matches:  c.Bool("matches"),
		FailFast: c.Bool("fail-fast"),
		Progress: c.Bool("progress"),
	}, nil
}
