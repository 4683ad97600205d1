package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v2"

	sent "github.com/revelaction/segfact/sentence"
	"github.com/revelaction/segfact/storage"
	"github.com/revelaction/segfact/storage/filesystem"
	"github.com/revelaction/segfact/storage/sqlite/zombiezen"
)

// NewDocRepository opens an existing repository: a directory is a
// filesystem store, a file a SQLite database.
func NewDocRepository(p *Pool, path string) (storage.DocRepository, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() {
		return filesystem.NewDocStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}

// CreateDocRepository opens the repository at path, creating it if missing.
// A missing path with a .db or .sqlite extension is created as a SQLite
// database, any other as a directory.
func CreateDocRepository(p *Pool, path string) (storage.DocRepository, error) {
	isFile, err := ensureRepository(path)
	if err != nil {
		return nil, err
	}

	if !isFile {
		return filesystem.NewDocStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}

// NewReportWriter opens the report repository at path, creating it if
// missing, following the CreateDocRepository rules.
func NewReportWriter(p *Pool, path string) (storage.ReportWriter, error) {
	isFile, err := ensureRepository(path)
	if err != nil {
		return nil, err
	}

	if !isFile {
		return filesystem.NewReportStore(path), nil
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewReportStore(pool), nil
}

// ensureRepository creates the directory of a missing directory repository.
// It reports whether path is a SQLite repository.
func ensureRepository(path string) (bool, error) {
	if info, err := os.Stat(path); err == nil {
		return !info.IsDir(), nil
	}

	switch filepath.Ext(path) {
	case ".db", ".sqlite":
		// the pool creates the file
		return true, nil
	}
	return false, os.MkdirAll(path, 0755)
}

func docRepository(c *cli.Context, p *Pool) (storage.DocRepository, error) {
	return docRepositoryAt(p, c.String("doc-path"))
}

func docRepositoryAt(p *Pool, path string) (storage.DocRepository, error) {
	if path == "" {
		return nil, errors.New("no doc repository, use --doc-path or SEGFACT_DOC_PATH")
	}
	return NewDocRepository(p, path)
}

func intArg(c *cli.Context, i int, name string) (int, error) {
	arg := c.Args().Get(i)
	if arg == "" {
		return 0, fmt.Errorf("missing %s", name)
	}

	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, arg)
	}
	return v, nil
}

// readDoc reads the doc given as a repository id or as a JSON doc file.
func readDoc(c *cli.Context, p *Pool, arg string) (sent.Doc, error) {
	return readDocAt(p, c.String("doc-path"), arg)
}

func readDocAt(p *Pool, docPath, arg string) (sent.Doc, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		repo, err := docRepositoryAt(p, docPath)
		if err != nil {
			return sent.Doc{}, err
		}
		return repo.Read(id)
	}

	doc, err := filesystem.ReadDoc(arg)
	if err != nil {
		absPath, _ := filepath.Abs(arg)
		return sent.Doc{}, fmt.Errorf("filesystem document %q: %w", absPath, err)
	}
	return doc, nil
}

// readSentence reads the sentence <doc> <sentence> of the command args.
func readSentence(c *cli.Context, p *Pool) (sent.Sentence, error) {
	if c.Args().Len() != 2 {
		return sent.Sentence{}, errors.New("expected <doc> <sentence>")
	}

	doc, err := readDoc(c, p, c.Args().Get(0))
	if err != nil {
		return sent.Sentence{}, err
	}

	sentId, err := intArg(c, 1, "sentence id")
	if err != nil {
		return sent.Sentence{}, err
	}

	if sentId < 0 || sentId >= len(doc.Sentences) {
		return sent.Sentence{}, fmt.Errorf("sentence index %d out of bounds (0-%d)", sentId, len(doc.Sentences)-1)
	}
	return doc.Sentences[sentId], nil
}
