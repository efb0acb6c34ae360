package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/varalys/pushguard/internal/types"
)

// Baseline records fingerprints of accepted findings so later scans only
// report what is new.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

// LoadBaseline reads a baseline file. A missing or unreadable file yields an
// empty baseline together with the error.
func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	f, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(f, &b); err != nil {
		return Baseline{Items: map[string]bool{}}, fmt.Errorf("parse baseline %s: %w", path, err)
	}
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

// SaveBaseline writes the fingerprints of findings to path.
func SaveBaseline(path string, findings []types.Finding) error {
	b := Baseline{Items: map[string]bool{}}
	for _, f := range findings {
		b.Items[Fingerprint(f)] = true
	}
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// FilterNewFindings drops findings whose fingerprint is in the baseline.
func FilterNewFindings(findings []types.Finding, base Baseline) []types.Finding {
	var out []types.Finding
	for _, f := range findings {
		if !base.Items[Fingerprint(f)] {
			out = append(out, f)
		}
	}
	return out
}

// Fingerprint identifies a finding by path, kind and match text. Line numbers
// are left out so unrelated edits above a secret do not resurface it.
func Fingerprint(f types.Finding) string {
	sum := xxhash.Sum64String(f.Path + "|" + f.Kind + "|" + f.Match)
	return strconv.FormatUint(sum, 16)
}
