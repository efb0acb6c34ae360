package core

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_Smoke(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.py"), []byte("db_password = \"supersecret1\"\n"), 0644))

	res, err := Scan(context.Background(), Config{Root: dir})
	require.NoError(t, err)
	assert.Equal(t, 1, res.FilesScanned)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "Password", res.Findings[0].Kind)

	assert.NotEmpty(t, DetectorIDs())
}

func TestScan_MissingRoot(t *testing.T) {
	_, err := Scan(context.Background(), Config{Root: filepath.Join(t.TempDir(), "nope")})
	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestHygiene(t *testing.T) {
	dir := t.TempDir()
	rep, err := Hygiene(dir)
	require.NoError(t, err)
	assert.False(t, rep.Passed(), "no .gitignore")

	_, err = Hygiene(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestReportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.py"), []byte("token = \"ghp_"+strings.Repeat("a", 36)+"\"\n"), 0644))
	res, err := Scan(context.Background(), Config{Root: dir})
	require.NoError(t, err)
	hyg, err := Hygiene(dir)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, dir, res, hyg))
	doc, err := ReadReport(&buf)
	require.NoError(t, err)
	assert.Equal(t, dir, doc.Root)
	assert.Equal(t, 1, doc.FilesScanned)
	assert.Equal(t, res.Findings, doc.Findings)
	assert.Equal(t, hyg.Checks, doc.Hygiene)
	assert.False(t, doc.Passed)

	_, err = ReadReport(strings.NewReader("[]"))
	assert.Error(t, err, "a bare findings list is not a report")
}
