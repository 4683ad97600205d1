package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/segfact/match"
	"github.com/revelaction/segfact/overlap"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(ui).RunContext(ctx, os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "segfact: %v\n", err)

	var sErr *overlap.SentenceError
	if errors.As(err, &sErr) {
		fprintTokens(w, sErr.Tokens)
	}

	var mErr *match.SentenceError
	if errors.As(err, &mErr) {
		fprintTokens(w, mErr.Tokens)
	}
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:                 "segfact",
		Usage:                "extract verb-argument facts from parsed texts and score their overlap",
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		EnableBashCompletion: true,
		// errors are printed by main
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "doc-path",
				Aliases: []string{"d"},
				EnvVars: []string{"SEGFACT_DOC_PATH"},
				Usage:   "doc repository: a directory of JSON docs or a SQLite file",
			},
			&cli.StringFlag{
				Name:    "report-path",
				EnvVars: []string{"SEGFACT_REPORT_PATH"},
				Usage:   "report repository: a directory or a SQLite file",
			},
		},
		Commands: []*cli.Command{
			lsDocCommand(ui),
			docCommand(ui),
			sentenceCommand(ui),
			treeCommand(ui),
			clausesCommand(ui),
			relationsCommand(ui),
			overlapCommand(ui),
			findCommand(ui),
			statCommand(ui),
			queryCommand(ui),
			pairsCommand(ui),
			serveCommand(ui),
			importDocCommand(ui),
			exportDocCommand(ui),
			versionCommand(ui),
			bashCommand(ui),
		},
	}
}
