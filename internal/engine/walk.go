package engine

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/varalys/pushguard/pkg/log"
)

// Walk traverses root top-down and invokes visit for each eligible file with
// its absolute path and its slash-separated path relative to root. Excluded
// directories are pruned before descending, so nothing beneath them is
// visited. Files named in the policy or rejected by the include/exclude globs
// are skipped without being passed to visit. Unreadable directories are
// skipped silently.
func Walk(ctx context.Context, root string, p Policy, includes, excludes []string, visit func(abs, rel string) error) error {
	return walkDir(ctx, root, "", p, includes, excludes, visit)
}

func walkDir(ctx context.Context, root, relDir string, p Policy, includes, excludes []string, visit func(abs, rel string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Join(root, filepath.FromSlash(relDir))
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Debug("skipping unreadable directory", "path", relDir, "err", err)
		return nil
	}

	var subdirs []string
	for _, e := range entries {
		name := e.Name()
		abs := filepath.Join(dir, name)
		if isDirEntry(abs, e) {
			// symlinked directories are listed but never followed
			if e.Type()&fs.ModeSymlink == 0 {
				subdirs = append(subdirs, name)
			}
			continue
		}
		if p.SkipFile(name) {
			continue
		}
		rel := path.Join(relDir, name)
		if !allowedByGlobs(rel, includes, excludes) {
			continue
		}
		if err := visit(abs, rel); err != nil {
			return err
		}
	}

	for _, name := range pruneDirs(subdirs, p) {
		if err := walkDir(ctx, root, path.Join(relDir, name), p, includes, excludes, visit); err != nil {
			return err
		}
	}
	return nil
}

// pruneDirs returns the subdirectories that may be descended into.
func pruneDirs(names []string, p Policy) []string {
	kept := make([]string, 0, len(names))
	for _, n := range names {
		if !p.SkipDir(n) {
			kept = append(kept, n)
		}
	}
	return kept
}

// isDirEntry resolves symlinks so a link to a directory is not mistaken for a
// file. Broken links count as files.
func isDirEntry(abs string, e fs.DirEntry) bool {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.IsDir()
	}
	info, err := os.Stat(abs)
	return err == nil && info.IsDir()
}
