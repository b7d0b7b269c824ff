package notes

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
)

// titlePattern matches a top-level heading line: optional leading whitespace,
// a single '#', whitespace, then the heading text.
var titlePattern = regexp.MustCompile(`^\s*#\s+(.+?)\s*$`)

// ExtractTitle scans content top to bottom and returns the text of the first
// top-level heading line, trimmed. When no such line exists it falls back to
// the provided name (normally the note's filename stem).
func ExtractTitle(content []byte, fallback string) string {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		if m := titlePattern.FindStringSubmatch(scanner.Text()); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return fallback
}

// Title loads the note's content if needed and derives its display title.
func (n *Note) Title() (string, error) {
	if err := n.LoadContent(); err != nil {
		return "", err
	}
	return ExtractTitle(n.Content, n.Name), nil
}
