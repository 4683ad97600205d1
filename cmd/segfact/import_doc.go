package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	sent "github.com/revelaction/segfact/sentence"
	"github.com/revelaction/segfact/storage/filesystem"
)

// Source formats of import-doc
const (
	formatAuto   = "auto"
	formatJSON   = "json"
	formatSpacy  = "spacy"
	formatCoNLLU = "conllu"
)

func importDocCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "import-doc",
		Usage:     "import docs into a repository",
		ArgsUsage: "<JSON docs dir | doc JSON | spaCy JSON | CoNLL-U file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "to", Required: true, Usage: "target repository, created if missing (.db for SQLite)"},
			&cli.StringFlag{Name: "format", Value: formatAuto, Usage: "auto, json, spacy or conllu"},
			&cli.StringFlag{Name: "title", Usage: "title of the imported doc, the file name if empty"},
			&cli.StringSliceFlag{Name: "label", Usage: "label of the imported doc"},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return errors.New("expected <source>")
			}

			return importDoc(ImportDocOptions{
				From:   c.Args().First(),
				To:     c.String("to"),
				Format: c.String("format"),
				Title:  c.String("title"),
				Labels: c.StringSlice("label"),
			}, ui)
		},
	}
}

func importDoc(opts ImportDocOptions, ui UI) error {
	docs, err := readSource(opts)
	if err != nil {
		return err
	}

	var p Pool
	defer p.Close()

	dst, err := CreateDocRepository(&p, opts.To)
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "Reading docs from %s...\n", opts.From)
	prog, bar := newProgress(ui.Err, len(docs))

	count := 0
	for _, doc := range docs {
		if err := dst.Write(doc); err != nil {
			prog.Stop()
			return fmt.Errorf("failed to write doc %s: %w", doc.Title, err)
		}
		count++
		bar.Incr()
	}
	prog.Stop()

	fmt.Fprintf(ui.Out, "Successfully imported %d docs from %s to %s\n", count, opts.From, opts.To)
	return nil
}

// readSource reads all the docs of a JSON docs directory, or the single doc of
// a file.
func readSource(opts ImportDocOptions) ([]sent.Doc, error) {
	info, err := os.Stat(opts.From)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		src, err := filesystem.NewDocStore(opts.From)
		if err != nil {
			return nil, err
		}
		metas, err := src.List()
		if err != nil {
			return nil, err
		}

		docs := make([]sent.Doc, 0, len(metas))
		for _, m := range metas {
			doc, err := src.Read(m.Id)
			if err != nil {
				return nil, fmt.Errorf("failed to read doc %s: %w", m.Title, err)
			}
			docs = append(docs, doc)
		}
		return docs, nil
	}

	doc, err := readFile(opts)
	if err != nil {
		return nil, err
	}
	return []sent.Doc{doc}, nil
}

func readFile(opts ImportDocOptions) (sent.Doc, error) {
	format := opts.Format
	if format == formatAuto {
		var err error
		if format, err = detectFormat(opts.From); err != nil {
			return sent.Doc{}, err
		}
	}

	title := opts.Title
	if title == "" {
		base := filepath.Base(opts.From)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	var doc sent.Doc
	switch format {
	case formatJSON:
		d, err := filesystem.ReadDoc(opts.From)
		if err != nil {
			return sent.Doc{}, err
		}
		doc = d
		if opts.Title != "" || doc.Title == "" {
			doc.Title = title
		}
	case formatSpacy:
		data, err := os.ReadFile(opts.From)
		if err != nil {
			return sent.Doc{}, err
		}
		sentences, err := sent.FromSpacy(data)
		if err != nil {
			return sent.Doc{}, err
		}
		doc = sent.Doc{Title: title, Sentences: sentences}
	case formatCoNLLU:
		f, err := os.Open(opts.From)
		if err != nil {
			return sent.Doc{}, err
		}
		defer f.Close()
		sentences, err := sent.ReadCoNLLU(f)
		if err != nil {
			return sent.Doc{}, err
		}
		doc = sent.Doc{Title: title, Sentences: sentences}
	default:
		return sent.Doc{}, fmt.Errorf("unknown format %q", format)
	}

	if len(opts.Labels) > 0 {
		doc.Labels = opts.Labels
	}
	return doc, nil
}

// detectFormat uses the extension, and for JSON files the top level keys:
// spaCy docs have "sents", segfact docs "sentences".
func detectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".conllu", ".conll":
		return formatCoNLLU, nil
	case ".json":
	default:
		return "", fmt.Errorf("can not detect the format of %s, use --format", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return "", fmt.Errorf("JSON decoding error: %w", err)
	}
	if _, ok := keys["sents"]; ok {
		return formatSpacy, nil
	}
	return formatJSON, nil
}
