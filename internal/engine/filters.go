package engine

import (
	"path"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

var defaultExcludeDirs = []string{
	// version control
	".git", ".hg", ".svn",
	// dependency caches and virtual environments
	"node_modules", "venv", ".venv", ".eggs", "egg-info", "__pycache__", ".tox",
	// build output
	"dist", "build",
	// coverage and tool caches
	"htmlcov", ".pytest_cache", ".mypy_cache",
	"logs",
}

// exact filenames that are never opened
var defaultExcludeFiles = []string{
	".gitignore",
	".DS_Store",
	// lockfiles
	"package-lock.json", "yarn.lock", "Pipfile.lock",
	// docs that list example secrets on purpose
	"GITHUB_SECURITY_CHECKLIST.md",
	// our own artifacts carry match text
	BaselineFileName,
	"security_scanner.py",
}

// binary, media, archive and database suffixes
var defaultExcludeExts = []string{
	".pyc", ".pyo", ".so", ".dylib", ".dll", ".exe",
	".jpg", ".jpeg", ".png", ".gif", ".ico", ".svg",
	".mp4", ".mov", ".avi", ".mp3", ".wav",
	".pdf", ".zip", ".tar", ".gz", ".dmg",
	".db", ".sqlite", ".sqlite3",
}

// BaselineFileName is the default baseline path written by `pushguard baseline`.
const BaselineFileName = "pushguard.baseline.json"

// Policy is the exclusion policy applied while walking: directory names that
// are never descended into, file names that are never opened and suffixes
// that are never decoded as text. It is read-only during a scan.
type Policy struct {
	dirs  map[string]struct{}
	files map[string]struct{}
	exts  []string
}

// DefaultPolicy returns the built-in exclusion sets.
func DefaultPolicy() Policy {
	return Policy{}.With(defaultExcludeDirs, defaultExcludeFiles, defaultExcludeExts)
}

// With returns a copy of p with extra entries added to each set. The
// built-in entries are never removed.
func (p Policy) With(dirs, files, exts []string) Policy {
	out := Policy{
		dirs:  make(map[string]struct{}, len(p.dirs)+len(dirs)),
		files: make(map[string]struct{}, len(p.files)+len(files)),
		exts:  make([]string, 0, len(p.exts)+len(exts)),
	}
	for d := range p.dirs {
		out.dirs[d] = struct{}{}
	}
	for f := range p.files {
		out.files[f] = struct{}{}
	}
	out.exts = append(out.exts, p.exts...)
	for _, d := range dirs {
		if d = strings.TrimSpace(d); d != "" {
			out.dirs[d] = struct{}{}
		}
	}
	for _, f := range files {
		if f = strings.TrimSpace(f); f != "" {
			out.files[f] = struct{}{}
		}
	}
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out.exts = append(out.exts, e)
	}
	return out
}

// SkipDir reports whether a directory with this base name is pruned.
func (p Policy) SkipDir(name string) bool {
	_, ok := p.dirs[name]
	return ok
}

// SkipFile reports whether a file with this base name is never visited.
func (p Policy) SkipFile(name string) bool {
	_, ok := p.files[name]
	return ok
}

// SkipExt reports whether name ends in an excluded suffix. Comparison is
// case-insensitive so "photo.PNG" is skipped like "photo.png".
func (p Policy) SkipExt(name string) bool {
	lower := strings.ToLower(name)
	for _, e := range p.exts {
		if strings.HasSuffix(lower, e) {
			return true
		}
	}
	return false
}

// IsTemplatePath reports whether matches in this file are treated as
// documentation rather than committed secrets (.env.example, example.config).
func IsTemplatePath(rel string) bool {
	return strings.Contains(rel, ".example") || strings.Contains(rel, "example.")
}

// allowedByGlobs returns true if the given slash path is allowed by the
// include/exclude glob lists. Include globs, if provided, act as an allowlist;
// exclude globs are applied afterwards.
func allowedByGlobs(relPath string, includes, excludes []string) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
			out = append(out, trimGlobPrefix(p))
		}
	}
	return out
}

// trimGlobPrefix lets "./src/**" and "**/*.env" also match at the root.
func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, path.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}
