package pushguard

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

func pickString(cli string, file *string) string {
	if cli != "" {
		return cli
	}
	if file != nil {
		return strings.TrimSpace(*file)
	}
	return ""
}

func pickInt(cli int, file *int) int {
	if cli != 0 {
		return cli
	}
	if file != nil {
		return *file
	}
	return 0
}

func pickBool(cli bool, file *bool) bool {
	if cli {
		return true
	}
	return file != nil && *file
}

// isTerminal reports whether w is a terminal, so colour can be turned off for
// pipes, files and test buffers.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
