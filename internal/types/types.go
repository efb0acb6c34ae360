package types

// Severity is a coarse-grained risk level for a detector.
type Severity string

const (
	SevLow  Severity = "low"
	SevMed  Severity = "medium"
	SevHigh Severity = "high"
)

// Finding is one potential secret at a path and 1-based line. Match is
// truncated to 50 characters plus an ellipsis, Context is the trimmed source
// line truncated to 100 characters.
type Finding struct {
	Kind     string   `json:"kind"`
	Detector string   `json:"detector"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	Line     int      `json:"line"`
	Match    string   `json:"match"`
	Context  string   `json:"context,omitempty"`
}

// ScanResult holds the aggregated findings of one tree walk and the number of
// files that were visited for scanning.
type ScanResult struct {
	Findings     []Finding `json:"findings"`
	FilesScanned int       `json:"files_scanned"`
}

// Passed reports whether the scan produced no findings.
func (r ScanResult) Passed() bool { return len(r.Findings) == 0 }
