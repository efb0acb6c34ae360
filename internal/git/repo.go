package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/index"
)

// ErrNotRepository is returned by Open when no work tree contains the path.
var ErrNotRepository = errors.New("not a git work tree")

// Repo is a git work tree opened from a path inside it.
type Repo struct {
	repo *gogit.Repository
	root string
}

// Metadata describes the checked-out state. Fields are empty when unknown.
type Metadata struct {
	Repo   string `json:"repo,omitempty"`
	Commit string `json:"commit,omitempty"`
	Branch string `json:"branch,omitempty"`
}

// validateRoot validates and normalizes a path inside a work tree.
func validateRoot(root string) (string, error) {
	if strings.ContainsRune(root, 0) {
		return "", fmt.Errorf("invalid path: contains null byte")
	}
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}
	return abs, nil
}

// Open finds the work tree containing path, searching parent directories.
func Open(path string) (*Repo, error) {
	abs, err := validateRoot(path)
	if err != nil {
		return nil, err
	}
	r, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, ErrNotRepository
		}
		return nil, err
	}
	wt, err := r.Worktree()
	if err != nil {
		// bare repositories have no work tree to check
		return nil, ErrNotRepository
	}
	return &Repo{repo: r, root: wt.Filesystem.Root()}, nil
}

// Root is the top-level directory of the work tree.
func (r *Repo) Root() string { return r.root }

// IsTracked reports whether the file at abs is present in the git index.
func (r *Repo) IsTracked(abs string) (bool, error) {
	rel, err := r.relPath(abs)
	if err != nil {
		return false, err
	}
	idx, err := r.repo.Storer.Index()
	if err != nil {
		return false, err
	}
	if _, err := idx.Entry(rel); err != nil {
		if errors.Is(err, index.ErrEntryNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// relPath converts abs to the slash-separated form used by index entries.
// Symlinks are resolved on both sides so temp dirs behind links still match.
func (r *Repo) relPath(abs string) (string, error) {
	root := r.root
	if s, err := filepath.EvalSymlinks(root); err == nil {
		root = s
	}
	dir, base := filepath.Split(abs)
	if s, err := filepath.EvalSymlinks(dir); err == nil {
		abs = filepath.Join(s, base)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the work tree %s", abs, r.root)
	}
	return filepath.ToSlash(rel), nil
}

// Metadata returns origin, HEAD commit and branch on a best-effort basis.
func (r *Repo) Metadata() Metadata {
	var md Metadata
	if remote, err := r.repo.Remote("origin"); err == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			md.Repo = shortRemote(urls[0])
		}
	}
	head, err := r.repo.Head()
	if err != nil {
		// unborn branch: nothing committed yet
		return md
	}
	md.Commit = head.Hash().String()
	if head.Name().IsBranch() {
		md.Branch = head.Name().Short()
	}
	return md
}

// shortRemote trims a remote URL down to owner/name when possible.
func shortRemote(s string) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".git")
	if i := strings.Index(s, "github.com/"); i >= 0 {
		return s[i+len("github.com/"):]
	}
	if i := strings.LastIndex(s, ":"); i >= 0 && !strings.Contains(s, "://") {
		return s[i+1:]
	}
	return s
}
