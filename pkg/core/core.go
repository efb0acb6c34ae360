package core

import (
	"context"

	"github.com/varalys/pushguard/internal/detectors"
	"github.com/varalys/pushguard/internal/engine"
	"github.com/varalys/pushguard/internal/hygiene"
	"github.com/varalys/pushguard/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type Config = engine.Config
type Finding = types.Finding
type ScanResult = types.ScanResult
type HygieneReport = hygiene.Report

var (
	ErrRootNotFound = engine.ErrRootNotFound
	ErrRootNotDir   = engine.ErrRootNotDir
)

// Scan walks cfg.Root and returns every finding plus the scanned-file count.
func Scan(ctx context.Context, cfg Config) (ScanResult, error) {
	return engine.Scan(ctx, cfg)
}

// Hygiene runs the repository checks against root.
func Hygiene(root string) (HygieneReport, error) {
	abs, err := engine.ResolveRoot(root)
	if err != nil {
		return HygieneReport{}, err
	}
	return hygiene.Run(abs), nil
}

// DetectorIDs returns the IDs of the built-in detectors in catalogue order.
func DetectorIDs() []string { return detectors.IDs() }
