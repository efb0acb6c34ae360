package engine

import (
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
	"github.com/varalys/pushguard/internal/detectors"
	"github.com/varalys/pushguard/internal/types"
	"github.com/varalys/pushguard/pkg/log"
)

// MaxContentChars is the largest decoded file, in characters, that is
// matched against the catalogue. Larger files are visited but not matched.
const MaxContentChars = 1_000_000

const (
	maxMatchChars   = 50
	maxContextChars = 100
)

var commentPrefixes = []string{"#", "//", "/*", "*", "<!--"}

// FileScanner runs a detector catalogue over single files.
type FileScanner struct {
	Detectors []detectors.Detector
	Policy    Policy
	// MaxChars overrides MaxContentChars when positive.
	MaxChars int
	// SniffBinary skips files whose leading bytes look like a known binary
	// format even when the extension is not excluded.
	SniffBinary bool
}

// ScanFile reads the file at abs and returns its findings labelled with rel.
// It never fails: unreadable and non-regular files simply produce no
// findings. The size limit applies to the decoded text, so bytes dropped by
// decoding never count against it.
func (s FileScanner) ScanFile(abs, rel string) []types.Finding {
	if s.Policy.SkipExt(rel) {
		return nil
	}
	info, err := os.Stat(abs)
	if err != nil {
		log.Debug("skipping unreadable file", "path", rel, "err", err)
		return nil
	}
	// pipes and devices can block or never end
	if !info.Mode().IsRegular() {
		log.Debug("skipping non-regular file", "path", rel, "mode", info.Mode().String())
		return nil
	}
	b, err := os.ReadFile(abs)
	if err != nil {
		log.Debug("skipping unreadable file", "path", rel, "err", err)
		return nil
	}
	if s.SniffBinary && looksBinary(b) {
		log.Debug("skipping binary content", "path", rel)
		return nil
	}
	return ScanContent(s.Detectors, rel, decodeText(b), s.maxChars())
}

func (s FileScanner) maxChars() int {
	if s.MaxChars > 0 {
		return s.MaxChars
	}
	return MaxContentChars
}

// ScanContent runs every detector over content and applies the comment and
// template-path suppression rules. rel is the path reported in findings.
func ScanContent(ds []detectors.Detector, rel, content string, maxChars int) []types.Finding {
	if maxChars <= 0 {
		maxChars = MaxContentChars
	}
	if len(content) > maxChars && utf8.RuneCountInString(content) > maxChars {
		log.Debug("skipping oversized content", "path", rel)
		return nil
	}
	if IsTemplatePath(rel) {
		return nil
	}
	var (
		out   []types.Finding
		lines = newLineIndex(content)
	)
	for _, d := range ds {
		for _, loc := range d.Pattern.FindAllStringIndex(content, -1) {
			n := lines.lineAt(loc[0])
			text := lines.text(n)
			if isDocumentedExample(text) {
				continue
			}
			out = append(out, types.Finding{
				Kind:     d.Kind,
				Detector: d.ID,
				Severity: d.Severity,
				Path:     rel,
				Line:     n,
				Match:    truncateMatch(content[loc[0]:loc[1]]),
				Context:  truncateContext(text),
			})
		}
	}
	return out
}

// isDocumentedExample is true for comment lines that mention an example or
// placeholder value.
func isDocumentedExample(line string) bool {
	trimmed := strings.TrimSpace(line)
	commented := false
	for _, p := range commentPrefixes {
		if strings.HasPrefix(trimmed, p) {
			commented = true
			break
		}
	}
	if !commented {
		return false
	}
	lower := strings.ToLower(line)
	return strings.Contains(lower, "example") || strings.Contains(lower, "placeholder")
}

// decodeText drops invalid UTF-8 and folds \r\n and bare \r to \n.
func decodeText(b []byte) string {
	s := strings.ToValidUTF8(string(b), "")
	if strings.IndexByte(s, '\r') < 0 {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func truncateMatch(s string) string {
	if utf8.RuneCountInString(s) > maxMatchChars {
		return string([]rune(s)[:maxMatchChars]) + "..."
	}
	return s
}

func truncateContext(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > maxContextChars {
		return string([]rune(s)[:maxContextChars])
	}
	return s
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex struct {
	content  string
	newlines []int
}

func newLineIndex(content string) lineIndex {
	var nl []int
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			nl = append(nl, i)
		}
	}
	return lineIndex{content: content, newlines: nl}
}

// lineAt counts the newlines before off.
func (li lineIndex) lineAt(off int) int {
	return sort.SearchInts(li.newlines, off) + 1
}

// text returns line n without its terminator.
func (li lineIndex) text(n int) string {
	start := 0
	if n > 1 {
		start = li.newlines[n-2] + 1
	}
	end := len(li.content)
	if n-1 < len(li.newlines) {
		end = li.newlines[n-1]
	}
	return li.content[start:end]
}

func looksBinary(b []byte) bool {
	const sniff = 800
	head := b
	if len(head) > sniff {
		head = head[:sniff]
	}
	for _, c := range head {
		if c == 0 {
			return true
		}
	}
	return filetype.IsImage(head) || filetype.IsVideo(head) || filetype.IsAudio(head) ||
		filetype.IsArchive(head) || filetype.IsFont(head) || filetype.IsDocument(head)
}
