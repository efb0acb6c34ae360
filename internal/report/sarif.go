package report

import (
	"encoding/json"
	"io"

	"github.com/varalys/pushguard/internal/detectors"
	"github.com/varalys/pushguard/internal/types"
)

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool      `json:"tool"`
	Results    []sarifResult  `json:"results"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	RuleIndex int          `json:"ruleIndex"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

func sevToLevel(s types.Severity) string {
	switch s {
	case types.SevHigh:
		return "error"
	case types.SevMed:
		return "warning"
	default:
		return "note"
	}
}

// WriteSARIF writes the scan result as SARIF 2.1.0. Every catalogue entry is
// listed as a rule so results can refer to it by index.
func WriteSARIF(w io.Writer, res types.ScanResult, version string) error {
	driver := sarifDriver{Name: "pushguard", Version: version}
	index := map[string]int{}
	for i, d := range detectors.Default() {
		index[d.ID] = i
		driver.Rules = append(driver.Rules, sarifRule{
			ID:               d.ID,
			Name:             d.Kind,
			ShortDescription: sarifMessage{Text: d.Kind + " detected"},
		})
	}
	run := sarifRun{
		Tool:       sarifTool{Driver: driver},
		Results:    []sarifResult{},
		Properties: map[string]any{"filesScanned": res.FilesScanned},
	}
	for _, f := range res.Findings {
		run.Results = append(run.Results, sarifResult{
			RuleID:    f.Detector,
			RuleIndex: index[f.Detector],
			Level:     sevToLevel(f.Severity),
			Message:   sarifMessage{Text: f.Kind + " detected: " + f.Match},
			Locations: []sarifLoc{{
				PhysicalLocation: sarifPhys{
					ArtifactLocation: sarifArt{URI: f.Path},
					Region:           sarifRegion{StartLine: f.Line},
				},
			}},
		})
	}
	doc := sarif{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
