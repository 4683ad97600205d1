package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/segfact/match"
	"github.com/revelaction/segfact/overlap"
	"github.com/revelaction/segfact/relation"
)

// JSONRenderer writes results as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Matches serializes tuple matches as a JSON array.
func (r *JSONRenderer) Matches(matches []match.TupleMatch) error {
	if matches == nil {
		matches = []match.TupleMatch{}
	}
	return json.NewEncoder(r.W).Encode(matches)
}

// Report serializes the report as the key/value mapping.
func (r *JSONRenderer) Report(rep overlap.Report) error {
	return json.NewEncoder(r.W).Encode(rep)
}

func (r *JSONRenderer) Relations(rel relation.Relations) error {
	return json.NewEncoder(r.W).Encode(rel)
}
