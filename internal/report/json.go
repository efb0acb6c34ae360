package report

import (
	"encoding/json"
	"io"

	"github.com/varalys/pushguard/internal/git"
	"github.com/varalys/pushguard/internal/hygiene"
	"github.com/varalys/pushguard/internal/types"
)

// JSONReport is the machine-readable scan output.
type JSONReport struct {
	Root         string          `json:"root"`
	Git          *git.Metadata   `json:"git,omitempty"`
	FilesScanned int             `json:"files_scanned"`
	Findings     []types.Finding `json:"findings"`
	// Baselined counts findings hidden by an accepted baseline.
	Baselined    int             `json:"baselined,omitempty"`
	Hygiene      []hygiene.Check `json:"hygiene"`
	Passed       bool            `json:"passed"`
}

// NewJSONReport assembles the report for a scan of root. Git metadata is
// attached when root is inside a work tree.
func NewJSONReport(root string, res types.ScanResult, hyg hygiene.Report) JSONReport {
	doc := JSONReport{
		Root:         root,
		FilesScanned: res.FilesScanned,
		Findings:     res.Findings,
		Hygiene:      hyg.Checks,
		Passed:       res.Passed() && hyg.Passed(),
	}
	if repo, err := git.Open(root); err == nil {
		md := repo.Metadata()
		doc.Git = &md
	}
	return doc
}

// WriteJSON encodes doc with empty lists rather than nulls.
func WriteJSON(w io.Writer, doc JSONReport) error {
	if doc.Findings == nil {
		doc.Findings = []types.Finding{}
	}
	if doc.Hygiene == nil {
		doc.Hygiene = []hygiene.Check{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
