package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/segfact/storage/filesystem"
)

func exportDocCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "export-doc",
		Usage: "export the docs of a repository to a directory of JSON docs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Required: true, Usage: "source repository"},
			&cli.StringFlag{Name: "to", Required: true, Usage: "target directory"},
		},
		Action: func(c *cli.Context) error {
			return exportDoc(ExportDocOptions{From: c.String("from"), To: c.String("to")}, ui)
		},
	}
}

func exportDoc(opts ExportDocOptions, ui UI) error {
	var p Pool
	defer p.Close()

	src, err := NewDocRepository(&p, opts.From)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.To, 0755); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}

	dst, err := filesystem.NewDocStore(opts.To)
	if err != nil {
		return err
	}

	docs, err := src.List()
	if err != nil {
		return err
	}

	prog, bar := newProgress(ui.Err, len(docs))

	count := 0
	for _, docMeta := range docs {
		doc, err := src.Read(docMeta.Id)
		if err != nil {
			prog.Stop()
			return fmt.Errorf("failed to read doc %s (id %d): %w", docMeta.Title, docMeta.Id, err)
		}

		doc.Title = docMeta.Title
		if err := dst.Write(doc); err != nil {
			prog.Stop()
			return fmt.Errorf("failed to write doc %s: %w", docMeta.Title, err)
		}
		count++
		bar.Incr()
	}
	prog.Stop()

	fmt.Fprintf(ui.Out, "Successfully exported %d docs from %s to %s\n", count, opts.From, opts.To)
	return nil
}
