package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/revelaction/segfact/overlap"
	"github.com/revelaction/segfact/storage"
)

// ReportStore writes each overlap report to <refId>-<distractorId>.json in a
// directory.
type ReportStore struct {
	root string
}

var _ storage.ReportWriter = (*ReportStore)(nil)

func NewReportStore(root string) *ReportStore {
	return &ReportStore{root: root}
}

func (rs *ReportStore) path(refId, distractorId int) string {
	return filepath.Join(rs.root, fmt.Sprintf("%d-%d.json", refId, distractorId))
}

func (rs *ReportStore) WriteReport(refId, distractorId int, r overlap.Report) error {
	data, err := json.MarshalIndent(r.Map(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(rs.path(refId, distractorId), data, 0644)
}

func (rs *ReportStore) ReadReport(refId, distractorId int) (overlap.Report, error) {
	data, err := os.ReadFile(rs.path(refId, distractorId))
	if err != nil {
		return overlap.Report{}, fmt.Errorf("IO error: %w", err)
	}

	var r overlap.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return overlap.Report{}, fmt.Errorf("JSON decoding error: %w", err)
	}
	return r, nil
}
