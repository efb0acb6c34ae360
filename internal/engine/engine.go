package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/varalys/pushguard/internal/detectors"
	"github.com/varalys/pushguard/internal/types"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrRootNotFound is returned when the scan root does not exist.
	ErrRootNotFound = errors.New("path does not exist")
	// ErrRootNotDir is returned when the scan root is not a directory.
	ErrRootNotDir = errors.New("path is not a directory")
)

// Config controls scanning behavior including scope, performance, and filters.
type Config struct {
	Root             string
	IncludeGlobs     string
	ExcludeGlobs     string
	EnableDetectors  string
	DisableDetectors string
	Threads          int
	MaxChars         int
	SniffBinary      bool

	// Appended to the built-in exclusion sets.
	ExtraExcludeDirs  []string
	ExtraExcludeFiles []string
	ExtraExcludeExts  []string

	// Progress is called after each file with the number done and the total.
	Progress func(done, total int)
}

type target struct {
	abs, rel string
}

// ResolveRoot returns the absolute form of root after checking that it is an
// existing directory.
func ResolveRoot(root string) (string, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", root, err)
	}
	st, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", abs, ErrRootNotFound)
		}
		return "", fmt.Errorf("stat %s: %w", abs, err)
	}
	if !st.IsDir() {
		return "", fmt.Errorf("%s: %w", abs, ErrRootNotDir)
	}
	return abs, nil
}

// Policy builds the exclusion policy for cfg.
func (cfg Config) Policy() Policy {
	return DefaultPolicy().With(cfg.ExtraExcludeDirs, cfg.ExtraExcludeFiles, cfg.ExtraExcludeExts)
}

// Detectors returns the catalogue narrowed by the enable/disable lists.
func (cfg Config) Detectors() []detectors.Detector {
	return detectors.Select(detectors.Default(), cfg.EnableDetectors, cfg.DisableDetectors)
}

// Scan walks cfg.Root and scans every eligible file. Files are scanned by a
// bounded pool of cfg.Threads workers; findings are assembled in walk order so
// the result does not depend on scheduling.
func Scan(ctx context.Context, cfg Config) (types.ScanResult, error) {
	var result types.ScanResult

	root, err := ResolveRoot(cfg.Root)
	if err != nil {
		return result, err
	}
	policy := cfg.Policy()
	fsc := FileScanner{
		Detectors:   cfg.Detectors(),
		Policy:      policy,
		MaxChars:    cfg.MaxChars,
		SniffBinary: cfg.SniffBinary,
	}

	var targets []target
	err = Walk(ctx, root, policy, parseGlobsList(cfg.IncludeGlobs), parseGlobsList(cfg.ExcludeGlobs), func(abs, rel string) error {
		targets = append(targets, target{abs: abs, rel: rel})
		return nil
	})
	if err != nil {
		return result, err
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	perFile := make([][]types.Finding, len(targets))
	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perFile[i] = fsc.ScanFile(t.abs, t.rel)
			if cfg.Progress != nil {
				mu.Lock()
				done++
				cfg.Progress(done, len(targets))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	result.FilesScanned = len(targets)
	for _, fs := range perFile {
		result.Findings = append(result.Findings, fs...)
	}
	return result, nil
}
