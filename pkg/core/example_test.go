package core_test

import (
	"context"
	"fmt"
	"os"

	"github.com/varalys/pushguard/pkg/core"
)

// ExampleScan demonstrates a scan of the current directory.
func ExampleScan() {
	cfg := core.Config{
		Root:         ".",
		Threads:      4,
		IncludeGlobs: "*.go,*.yml",
	}

	res, err := core.Scan(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
		return
	}
	if len(res.Findings) == 0 {
		fmt.Printf("No secrets found in %d files.\n", res.FilesScanned)
		return
	}
	hyg, err := core.Hygiene(cfg.Root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hygiene failed: %v\n", err)
		return
	}
	_ = core.WriteReport(os.Stdout, cfg.Root, res, hyg)
}
