package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/revelaction/segfact/overlap"
	sent "github.com/revelaction/segfact/sentence"
	"github.com/revelaction/segfact/storage"
)

func tokens(lemmas ...string) []sent.Token {
	toks := make([]sent.Token, len(lemmas))
	for i, l := range lemmas {
		toks[i] = sent.Token{Id: i, Head: 0, Lemma: l, Text: l, Dep: "dep"}
	}
	toks[0].Dep = "ROOT"
	return toks
}

func TestDocStoreWriteRead(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDocStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := sent.NewDoc("b", [][]sent.Token{tokens("eat", "dog"), tokens("sleep", "cat")})
	doc.Labels = []string{"news"}
	if err := store.Write(doc); err != nil {
		t.Fatalf("failed to write doc: %v", err)
	}

	if err := store.Write(sent.NewDoc("a.json", [][]sent.Token{tokens("run")})); err != nil {
		t.Fatalf("failed to write doc: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "b.json")); err != nil {
		t.Fatalf("expected b.json to exist: %v", err)
	}

	docs, err := store.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(docs) != 2 || docs[0].Title != "a.json" || docs[1].Title != "b.json" {
		t.Fatalf("expected [a.json b.json], got %+v", docs)
	}

	got, err := store.Read(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(got.Sentences))
	}

	if got.Sentences[1].Id != 1 || got.Sentences[1].DocId != 1 {
		t.Errorf("expected sentence 1 of doc 1, got %d of %d", got.Sentences[1].Id, got.Sentences[1].DocId)
	}

	if len(got.Labels) != 1 || got.Labels[0] != "news" {
		t.Errorf("expected labels [news], got %v", got.Labels)
	}

	if _, err := store.Read(5); err == nil {
		t.Errorf("expected error for out of range id")
	}
}

func TestDocStoreFindCandidates(t *testing.T) {
	store, err := NewDocStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := sent.NewDoc("doc", [][]sent.Token{tokens("eat", "dog"), tokens("eat", "cat"), tokens("sleep", "dog")})
	if err := store.Write(doc); err != nil {
		t.Fatalf("failed to write doc: %v", err)
	}

	var found []int
	cursor, err := store.FindCandidates([]string{"eat", "dog"}, 0, 10, func(s sent.Sentence) error {
		found = append(found, s.Id)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(found) != 1 || found[0] != 0 {
		t.Errorf("expected sentence [0], got %v", found)
	}

	if cursor != 1 {
		t.Errorf("expected cursor 1, got %d", cursor)
	}

	found = nil
	next, err := store.FindCandidates([]string{"eat", "dog"}, cursor, 10, func(s sent.Sentence) error {
		found = append(found, s.Id)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(found) != 0 || next != cursor {
		t.Errorf("expected no candidates and the same cursor after the last one, got %v %d", found, next)
	}
}

func TestDocStoreFindCandidatesLimit(t *testing.T) {
	store, err := NewDocStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	docs := []sent.Doc{
		sent.NewDoc("a", [][]sent.Token{tokens("eat", "dog"), tokens("sleep", "cat")}),
		sent.NewDoc("b", [][]sent.Token{tokens("eat", "cat"), tokens("eat", "cow")}),
	}
	for _, d := range docs {
		if err := store.Write(d); err != nil {
			t.Fatalf("failed to write doc: %v", err)
		}
	}

	type hit struct{ doc, sentence int }
	var pages [][]hit
	cursor := storage.Cursor(0)
	for {
		var page []hit
		next, err := store.FindCandidates([]string{"eat"}, cursor, 2, func(s sent.Sentence) error {
			page = append(page, hit{s.DocId, s.Id})
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if next == cursor {
			break
		}
		pages = append(pages, page)
		cursor = next
	}

	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d: %v", len(pages), pages)
	}

	if len(pages[0]) != 2 || pages[0][0] != (hit{0, 0}) || pages[0][1] != (hit{1, 0}) {
		t.Errorf("expected first page [{0 0} {1 0}], got %v", pages[0])
	}

	if len(pages[1]) != 1 || pages[1][0] != (hit{1, 1}) {
		t.Errorf("expected second page [{1 1}], got %v", pages[1])
	}

	if cursor != 4 {
		t.Errorf("expected final cursor 4, got %d", cursor)
	}
}

func TestReportStore(t *testing.T) {
	rs := NewReportStore(t.TempDir())
	want := overlap.Report{VSO: 1, Noun: 1}
	if err := rs.WriteReport(2, 3, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := rs.ReadReport(2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.VSO != 1 || got.Noun != 1 || got.VS != 0 || got.Matches != nil {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}
