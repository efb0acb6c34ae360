package files

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrTemplateExists is returned by WriteDotenvTemplate when dst exists and
// overwrite was not requested.
var ErrTemplateExists = errors.New("template already exists")

// DotenvKeys returns the variable names assigned in a dotenv file, in file
// order. Comments, blank lines and lines without '=' are skipped, as is a
// leading "export ".
func DotenvKeys(src string) ([]string, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var keys []string
	seen := map[string]bool{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, _, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(strings.TrimPrefix(k, "export "))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys, sc.Err()
}

// WriteDotenvTemplate writes dst with every key from src and an empty value.
// It returns the number of keys written.
func WriteDotenvTemplate(src, dst string, overwrite bool) (int, error) {
	if !overwrite {
		if _, err := os.Stat(dst); err == nil {
			return 0, fmt.Errorf("%s: %w", dst, ErrTemplateExists)
		}
	}
	keys, err := DotenvKeys(src)
	if err != nil {
		return 0, err
	}
	var sb strings.Builder
	sb.WriteString("# Copy to .env and fill in real values. Do not commit .env.\n")
	for _, k := range keys {
		sb.WriteString(k + "=\n")
	}
	if err := os.WriteFile(dst, []byte(sb.String()), 0644); err != nil {
		return 0, err
	}
	return len(keys), nil
}
