package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/revelaction/segfact/overlap"
	sent "github.com/revelaction/segfact/sentence"
	"github.com/revelaction/segfact/storage/filesystem"
)

func tok(id, head int, lemma, pos, dep string) sent.Token {
	return sent.Token{Id: id, Head: head, Text: lemma, Lemma: lemma, Pos: pos, Dep: dep}
}

func dogAteBone() []sent.Token {
	return []sent.Token{
		tok(0, 1, "dog", "NOUN", "nsubj"),
		tok(1, 1, "eat", "VERB", "ROOT"),
		tok(2, 1, "bone", "NOUN", "obj"),
		tok(3, 1, ".", "PUNCT", "punct"),
	}
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestOverlap(t *testing.T) {
	h := New(Options{})
	rec := post(t, h, "/api/overlap", overlapRequest{
		Reference:  [][]sent.Token{dogAteBone()},
		Distractor: [][]sent.Token{dogAteBone()},
		Matches:    true,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(m) != 10 || m[overlap.KeyVSOInd] != float64(1) {
		t.Errorf("expected 10 keys with vso 1, got %v", m)
	}
}

func TestOverlapMalformedSentence(t *testing.T) {
	h := New(Options{})
	bad := []sent.Token{tok(0, 5, "x", "VERB", "ROOT")}
	rec := post(t, h, "/api/overlap", overlapRequest{
		Reference:  [][]sent.Token{dogAteBone()},
		Distractor: [][]sent.Token{bad},
	})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var e errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if e.Sentence != "x" || e.Error == "" {
		t.Errorf("expected the raw sentence x, got %+v", e)
	}
}

func TestOverlapMethodAndBody(t *testing.T) {
	h := New(Options{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/overlap", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/overlap", bytes.NewBufferString("{bad")))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestRelations(t *testing.T) {
	rec := post(t, New(Options{}), "/api/relations", relationsRequest{Sentences: [][]sent.Token{dogAteBone()}})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got struct {
		VSO   [][]string `json:"vso"`
		Nouns []string   `json:"nouns"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(got.VSO) != 1 || got.VSO[0][2] != "bone" {
		t.Errorf("expected vso [[eat dog bone]], got %v", got.VSO)
	}

	if len(got.Nouns) != 2 {
		t.Errorf("expected 2 nouns, got %v", got.Nouns)
	}
}

func TestClauses(t *testing.T) {
	rec := post(t, New(Options{}), "/api/clauses", clausesRequest{Sentence: dogAteBone()})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got clausesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(got.Clauses) != 1 || got.Clauses[0].Index != 1 || got.Clauses[0].Dep != "ROOT" {
		t.Fatalf("expected the ROOT clause, got %+v", got.Clauses)
	}

	if len(got.Clauses[0].Words) != 3 {
		t.Errorf("expected 3 words without punctuation, got %v", got.Clauses[0].Words)
	}

	if len(got.Independent) != 1 || got.Independent[0] != 1 {
		t.Errorf("expected independent [1], got %v", got.Independent)
	}
}

func TestCORS(t *testing.T) {
	h := New(Options{})
	req := httptest.NewRequest(http.MethodOptions, "/api/overlap", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("expected allow origin *, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestDocsOverlap(t *testing.T) {
	dir := t.TempDir()
	store, err := filesystem.NewDocStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, title := range []string{"a", "b"} {
		if err := store.Write(sent.NewDoc(title, [][]sent.Token{dogAteBone()})); err != nil {
			t.Fatal(err)
		}
	}
	reports := filesystem.NewReportStore(t.TempDir())

	h := New(Options{Docs: store, Reports: reports})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	var docs []docJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &docs); err != nil || len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/overlap?ref=0&dis=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	stored, err := reports.ReadReport(0, 1)
	if err != nil {
		t.Fatalf("expected the report to be stored: %v", err)
	}
	if stored.VSO != 1 {
		t.Errorf("expected stored vso 1, got %d", stored.VSO)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/overlap?ref=0&dis=7", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
