// Package server exposes relation extraction and overlap scoring as a JSON
// REST API.
//
// Endpoints:
//
//	POST /api/overlap     body: {"reference":[[token...]], "distractor":[[token...]], "matches":bool}
//	POST /api/relations   body: {"sentences":[[token...]]}
//	POST /api/clauses     body: {"sentence":[token...], "finite_only":bool, "punct":bool}
//	GET  /api/docs
//	GET  /api/docs/overlap?ref=<id>&dis=<id>[&matches=true]
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/rs/cors"

	"github.com/revelaction/segfact/overlap"
	"github.com/revelaction/segfact/relation"
	sent "github.com/revelaction/segfact/sentence"
	"github.com/revelaction/segfact/storage"
	"github.com/revelaction/segfact/tree"
)

// ---- JSON request/response types -----------------------------------------

type overlapRequest struct {
	Reference  [][]sent.Token `json:"reference"`
	Distractor [][]sent.Token `json:"distractor"`
	Matches    bool           `json:"matches"`
}

type relationsRequest struct {
	Sentences [][]sent.Token `json:"sentences"`
}

type clausesRequest struct {
	Sentence   []sent.Token `json:"sentence"`
	FiniteOnly bool         `json:"finite_only"`
	Punct      bool         `json:"punct"`
}

type clauseJSON struct {
	Index  int      `json:"index"`
	Text   string   `json:"text"`
	Lemma  string   `json:"lemma"`
	Dep    string   `json:"dep"`
	Finite bool     `json:"finite"`
	Words  []string `json:"words"`
}

type clausesResponse struct {
	Clauses     []clauseJSON `json:"clauses"`
	Independent []int        `json:"independent"`
}

type docJSON struct {
	Id     int      `json:"id"`
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
}

type errorResponse struct {
	Error    string `json:"error"`
	Sentence string `json:"sentence,omitempty"`
}

// ---- helpers ---------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeSentenceError reports a malformed sentence with 422 and its raw text.
func writeSentenceError(w http.ResponseWriter, err error) {
	var sErr *overlap.SentenceError
	if errors.As(err, &sErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Sentence: sErr.Text()})
		return
	}

	if errors.Is(err, tree.ErrMalformedTree) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeError(w, http.StatusInternalServerError, err.Error())
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
		return false
	}
	return true
}

// ---- handlers --------------------------------------------------------------

func handleOverlap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body overlapRequest
		if !decode(w, r, &body) {
			return
		}

		rep, err := overlap.Compare(body.Reference, body.Distractor, body.Matches)
		if err != nil {
			writeSentenceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rep)
	}
}

func handleRelations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body relationsRequest
		if !decode(w, r, &body) {
			return
		}

		trees, err := overlap.Trees(body.Sentences, overlap.RoleReference)
		if err != nil {
			writeSentenceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, relation.Extract(trees))
	}
}

func handleClauses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body clausesRequest
		if !decode(w, r, &body) {
			return
		}

		t, err := tree.Build(body.Sentence, !body.Punct)
		if err != nil {
			writeSentenceError(w, err)
			return
		}

		resp := clausesResponse{Clauses: []clauseJSON{}, Independent: []int{}}
		for _, c := range t.Clauses(body.FiniteOnly) {
			nodes := append(t.CollectSimple(c.Index, false), c)
			sort.Slice(nodes, func(i, j int) bool { return nodes[i].Index < nodes[j].Index })
			words := make([]string, len(nodes))
			for i, n := range nodes {
				words[i] = n.Text
			}
			resp.Clauses = append(resp.Clauses, clauseJSON{
				Index:  c.Index,
				Text:   c.Text,
				Lemma:  c.Lemma,
				Dep:    c.Dep,
				Finite: t.IsFinite(c.Index),
				Words:  words,
			})
		}
		for _, c := range t.IndependentClauses(body.FiniteOnly) {
			resp.Independent = append(resp.Independent, c.Index)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleDocs(repo storage.DocReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}

		docs, err := repo.List()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		out := make([]docJSON, 0, len(docs))
		for _, d := range docs {
			out = append(out, docJSON{Id: d.Id, Title: d.Title, Labels: d.Labels})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func handleDocsOverlap(repo storage.DocReader, reports storage.ReportWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}

		q := r.URL.Query()
		refId, err1 := strconv.Atoi(q.Get("ref"))
		disId, err2 := strconv.Atoi(q.Get("dis"))
		if err1 != nil || err2 != nil {
			writeError(w, http.StatusBadRequest, "'ref' and 'dis' must be doc ids")
			return
		}
		withMatches, _ := strconv.ParseBool(q.Get("matches"))

		ref, err := repo.Read(refId)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		dis, err := repo.Read(disId)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}

		rep, err := overlap.Compare(ref.TokenLists(), dis.TokenLists(), withMatches)
		if err != nil {
			writeSentenceError(w, err)
			return
		}

		if reports != nil {
			if err := reports.WriteReport(refId, disId, rep); err != nil {
				log.Printf("report %d-%d not stored: %v", refId, disId, err)
			}
		}
		writeJSON(w, http.StatusOK, rep)
	}
}

// ---- server ----------------------------------------------------------------

// Options configure the optional doc endpoints. With a nil Docs the /api/docs
// endpoints are not registered. Reports, if set, stores the doc pair reports.
type Options struct {
	Docs    storage.DocReader
	Reports storage.ReportWriter
}

// New returns the API handler wrapped with the default CORS policy.
func New(opts Options) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/overlap", handleOverlap())
	mux.HandleFunc("/api/relations", handleRelations())
	mux.HandleFunc("/api/clauses", handleClauses())

	if opts.Docs != nil {
		mux.HandleFunc("/api/docs", handleDocs(opts.Docs))
		mux.HandleFunc("/api/docs/overlap", handleDocsOverlap(opts.Docs, opts.Reports))
	}

	return cors.Default().Handler(mux)
}

// ListenAndServe serves h on addr until ctx is canceled.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
