package hygiene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/varalys/pushguard/internal/git"
	"github.com/varalys/pushguard/pkg/log"
)

const (
	IgnoreFileName   = ".gitignore"
	SecretsFileName  = ".env"
	TemplateFileName = ".env.example"
)

const (
	CheckIgnoreFile      = "ignore_file"
	CheckSecretsTemplate = "secrets_template"
	CheckTrackedSecrets  = "tracked_secrets"
)

// RequiredIgnoreEntries must each appear somewhere in the ignore file.
var RequiredIgnoreEntries = []string{".env", "config.json", "*.log"}

// SuggestedIgnoreEntries is printed when no ignore file exists at all.
var SuggestedIgnoreEntries = []string{".env", "config.json", "*.log", "__pycache__/", "node_modules/"}

// Check is the outcome of one repository check. Advisory checks are printed
// but never affect Report.Passed.
type Check struct {
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Advisory bool     `json:"advisory,omitempty"`
	Message  string   `json:"message,omitempty"`
	Guidance []string `json:"guidance,omitempty"`
	Missing  []string `json:"missing,omitempty"`
}

type Report struct {
	Checks []Check `json:"checks"`
}

// Passed is true when every non-advisory check passed.
func (r Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Advisory && !c.Passed {
			return false
		}
	}
	return true
}

// Failed returns the checks that need attention, advisory ones included.
func (r Report) Failed() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.Passed {
			out = append(out, c)
		}
	}
	return out
}

// IgnoreFile fails when root has no ignore file or when any required entry is
// missing from it. Entries are matched as substrings of the whole file.
func IgnoreFile(root string) Check {
	c := Check{Name: CheckIgnoreFile}
	b, err := os.ReadFile(filepath.Join(root, IgnoreFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.Message = "WARNING: No " + IgnoreFileName + " file found!"
			c.Guidance = append([]string{"Create one with at minimum:"}, indent(SuggestedIgnoreEntries)...)
			c.Missing = append([]string(nil), RequiredIgnoreEntries...)
			return c
		}
		c.Message = fmt.Sprintf("cannot read %s: %v", IgnoreFileName, err)
		return c
	}
	content := string(b)
	for _, req := range RequiredIgnoreEntries {
		if !strings.Contains(content, req) {
			c.Missing = append(c.Missing, req)
		}
	}
	if len(c.Missing) > 0 {
		c.Message = IgnoreFileName + " missing: " + strings.Join(c.Missing, ", ")
		return c
	}
	c.Passed = true
	return c
}

// SecretsTemplate fails when a secrets file exists at root without its
// template beside it.
func SecretsTemplate(root string) Check {
	c := Check{Name: CheckSecretsTemplate, Passed: true}
	if !exists(filepath.Join(root, SecretsFileName)) {
		return c
	}
	if exists(filepath.Join(root, TemplateFileName)) {
		return c
	}
	c.Passed = false
	c.Message = "Found " + SecretsFileName + " but no " + TemplateFileName + "!"
	c.Guidance = []string{"Create " + TemplateFileName + " with placeholders"}
	return c
}

// TrackedSecrets warns when the secrets file is already in the git index.
// Roots outside a work tree pass silently.
func TrackedSecrets(root string) Check {
	c := Check{Name: CheckTrackedSecrets, Advisory: true, Passed: true}
	p := filepath.Join(root, SecretsFileName)
	if !exists(p) {
		return c
	}
	repo, err := git.Open(root)
	if err != nil {
		if !errors.Is(err, git.ErrNotRepository) {
			log.Debug("git open failed", "root", root, "err", err)
		}
		return c
	}
	tracked, err := repo.IsTracked(p)
	if err != nil {
		log.Debug("git index lookup failed", "path", p, "err", err)
		return c
	}
	if tracked {
		c.Passed = false
		c.Message = SecretsFileName + " is tracked by git!"
		c.Guidance = []string{"Remove it from the index: git rm --cached " + SecretsFileName}
	}
	return c
}

// Run executes every check against root in a fixed order.
func Run(root string) Report {
	return Report{Checks: []Check{
		IgnoreFile(root),
		SecretsTemplate(root),
		TrackedSecrets(root),
	}}
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func indent(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = "  " + l
	}
	return out
}
