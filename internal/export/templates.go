package export

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

//go:embed templates/*.html
var defaultTemplates embed.FS

// block emits repeated content in place of a placeholder that stands
// alone on a template line.
type block func(w io.Writer) error

// templateSet resolves the HTML template assets, preferring files in
// an override directory over the embedded defaults so users can
// restyle the summary without rebuilding.
type templateSet struct {
	dir string
}

func (t templateSet) source(name string) ([]byte, error) {
	if t.dir != "" {
		if raw, err := os.ReadFile(filepath.Join(t.dir, name)); err == nil {
			return raw, nil
		}
	}
	return defaultTemplates.ReadFile("templates/" + name)
}

// render streams a template line by line. A line whose trimmed
// content equals a key in blocks is replaced by that block's output;
// every other line has the field tokens substituted and is written
// through. Nesting depth is not hardcoded: blocks recursively call
// render for the next level of the year → month → date hierarchy.
func (t templateSet) render(w io.Writer, name string, fields map[string]string, blocks map[string]block) error {
	src, err := t.source(name)
	if err != nil {
		return fmt.Errorf("open template %s: %w", name, err)
	}

	sc := bufio.NewScanner(bytes.NewReader(src))
	for sc.Scan() {
		line := sc.Text()
		if b, ok := blocks[strings.TrimSpace(line)]; ok {
			if err := b(w); err != nil {
				return err
			}
			continue
		}
		for token, value := range fields {
			line = strings.ReplaceAll(line, token, value)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return sc.Err()
}
