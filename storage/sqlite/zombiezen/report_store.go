package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/revelaction/segfact/overlap"
	"github.com/revelaction/segfact/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// ReportStore stores overlap reports keyed by the (reference, distractor)
// doc pair. Writing a pair again replaces its report.
type ReportStore struct {
	pool *sqlitex.Pool
}

var _ storage.ReportWriter = (*ReportStore)(nil)

func NewReportStore(pool *sqlitex.Pool) *ReportStore {
	return &ReportStore{pool: pool}
}

func (h *ReportStore) WriteReport(refId, distractorId int, r overlap.Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	err = sqlitex.Execute(conn, "INSERT OR REPLACE INTO reports (ref_doc_id, distractor_doc_id, data) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
		Args: []any{refId, distractorId, string(data)},
	})
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// ReadReport returns the stored report of the pair.
func (h *ReportStore) ReadReport(refId, distractorId int) (overlap.Report, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return overlap.Report{}, err
	}
	defer h.pool.Put(conn)

	var r overlap.Report
	found := false
	err = sqlitex.Execute(conn, "SELECT data FROM reports WHERE ref_doc_id = ? AND distractor_doc_id = ?", &sqlitex.ExecOptions{
		Args: []any{refId, distractorId},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			return json.Unmarshal([]byte(stmt.ColumnText(0)), &r)
		},
	})
	if err != nil {
		return overlap.Report{}, err
	}
	if !found {
		return overlap.Report{}, fmt.Errorf("report not found: %d %d", refId, distractorId)
	}
	return r, nil
}
