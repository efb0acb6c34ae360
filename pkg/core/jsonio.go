package core

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/varalys/pushguard/internal/report"
)

// Report is the document written by `pushguard --json`.
type Report = report.JSONReport

// WriteReport encodes the scan and hygiene results for root in the same
// shape the CLI prints with --json.
func WriteReport(w io.Writer, root string, res ScanResult, hyg HygieneReport) error {
	return report.WriteJSON(w, report.NewJSONReport(root, res, hyg))
}

// ReadReport decodes a document produced by WriteReport or the CLI.
func ReadReport(r io.Reader) (Report, error) {
	var doc Report
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Report{}, fmt.Errorf("decode report: %w", err)
	}
	return doc, nil
}
