package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	sent "github.com/revelaction/segfact/sentence"
	"github.com/revelaction/segfact/storage"
)

// DocStore reads and writes docs as JSON files of a directory. The doc Id is
// the index of the file in the sorted directory listing.
type DocStore struct {
	docDir string

	// In-memory cache
	docs   []sent.Doc
	loaded []bool
}

var _ storage.DocRepository = (*DocStore)(nil)
var _ storage.Preloader = (*DocStore)(nil)

// NewDocStore creates a filesystem document handler.
func NewDocStore(docDir string) (*DocStore, error) {
	h := &DocStore{docDir: docDir}
	if err := h.list(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *DocStore) list() error {
	files, err := os.ReadDir(h.docDir)
	if err != nil {
		return err
	}

	var names []string
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == ".json" {
			names = append(names, file.Name())
		}
	}
	sort.Strings(names)

	h.docs = make([]sent.Doc, 0, len(names))
	for i, name := range names {
		h.docs = append(h.docs, sent.Doc{Id: i, Title: name})
	}
	h.loaded = make([]bool, len(h.docs))
	return nil
}

// Preload loads the contents of all docs into memory.
func (h *DocStore) Preload(cb func(current, total int, name string)) error {
	total := len(h.docs)
	for i := range h.docs {
		if cb != nil {
			cb(i+1, total, h.docs[i].Title)
		}

		if _, err := h.Read(i); err != nil {
			return err
		}
	}

	return nil
}

func (h *DocStore) List() ([]sent.Doc, error) {
	docs := make([]sent.Doc, len(h.docs))
	for i, d := range h.docs {
		docs[i] = sent.Doc{Id: d.Id, Title: d.Title, Labels: d.Labels}
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	if id < 0 || id >= len(h.docs) {
		return sent.Doc{}, fmt.Errorf("doc id out of range: %d", id)
	}

	if h.loaded[id] {
		return h.docs[id], nil
	}

	doc := &h.docs[id] // pointer to modify in place
	fullDoc, err := ReadDoc(filepath.Join(h.docDir, doc.Title))
	if err != nil {
		return sent.Doc{}, err
	}

	// Title and Id are already set
	doc.Labels = fullDoc.Labels
	doc.Sentences = fullDoc.Sentences
	for i := range doc.Sentences {
		doc.Sentences[i].DocId = id
		doc.Sentences[i].Id = i
	}
	h.loaded[id] = true

	return *doc, nil
}

// FindCandidates returns the sentences of all docs containing all the lemmas.
// There is no index: the cursor is the 1-based position of the last returned
// sentence in a scan of all docs in id order. A limit <= 0 means no limit.
func (h *DocStore) FindCandidates(lemmas []string, after storage.Cursor, limit int, onCandidate func(sent.Sentence) error) (storage.Cursor, error) {
	cursor := after
	count := 0
	pos := storage.Cursor(0)

	for id := range h.docs {
		doc, err := h.Read(id)
		if err != nil {
			return after, err
		}

		if pos+storage.Cursor(len(doc.Sentences)) <= after {
			pos += storage.Cursor(len(doc.Sentences))
			continue
		}

		for _, s := range doc.Sentences {
			pos++
			if pos <= after || !hasLemmas(s, lemmas) {
				continue
			}
			if err := onCandidate(s); err != nil {
				return after, err
			}

			cursor = pos
			count++
			if limit > 0 && count == limit {
				return cursor, nil
			}
		}
	}

	return cursor, nil
}

func hasLemmas(s sent.Sentence, lemmas []string) bool {
	for _, l := range lemmas {
		found := false
		for _, t := range s.Tokens {
			if t.Lemma == l {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Write stores the doc as <title>.json, adding ".json" if the title has no
// such extension.
func (h *DocStore) Write(doc sent.Doc) error {
	name := doc.Title
	if name == "" {
		return fmt.Errorf("doc without title can not be written")
	}
	if filepath.Ext(name) != ".json" {
		name += ".json"
	}

	doc.Title = name
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(h.docDir, name), data, 0644); err != nil {
		return err
	}

	return h.list()
}

// ReadDoc reads a Doc JSON from the given path and unmarshals it.
func ReadDoc(path string) (sent.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	var doc sent.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return doc, nil
}
