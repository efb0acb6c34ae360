//go:build linux || darwin

package engine

import (
	"context"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varalys/pushguard/internal/detectors"
)

func TestScanFile_NamedPipe(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, syscall.Mkfifo(filepath.Join(dir, "events.log.pipe"), 0644))
	writeTree(t, dir, map[string]string{"app.py": "password = \"supersecret1\"\n"})

	s := FileScanner{Detectors: detectors.Default(), Policy: DefaultPolicy()}
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.Empty(t, s.ScanFile(filepath.Join(dir, "events.log.pipe"), "events.log.pipe"))
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("reading a named pipe blocked")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := Scan(ctx, Config{Root: dir})
	require.NoError(t, err)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "app.py", res.Findings[0].Path)
	assert.Equal(t, 2, res.FilesScanned)
}
