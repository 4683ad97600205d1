package storage

import (
	"github.com/revelaction/segfact/overlap"
	sent "github.com/revelaction/segfact/sentence"
)

// Cursor for paginated lemma-based queries
type Cursor int64

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// Content (Sentences) is not loaded.
	List() ([]sent.Doc, error)

	// Read returns a document by ID
	Read(id int) (sent.Doc, error)

	// FindCandidates returns sentence candidates containing ALL given lemmas,
	// resuming after the given cursor. It calls onCandidate for at most limit
	// results, all of them if limit <= 0. Returns the new cursor, unchanged
	// when there are no more candidates, and any error.
	FindCandidates(lemmas []string, after Cursor, limit int, onCandidate func(sent.Sentence) error) (Cursor, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document and its sentences/lemmas to storage
	Write(doc sent.Doc) error
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// ReportWriter persists the overlap report of a (reference, distractor) doc
// pair.
type ReportWriter interface {
	WriteReport(refId, distractorId int, r overlap.Report) error
}

// Preloader defines an optional capability for repositories that require
// or support eager loading of data into memory.
type Preloader interface {
	Preload(cb func(current, total int, name string)) error
}
