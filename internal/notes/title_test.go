package notes

import "testing"

func TestExtractTitle(t *testing.T) {
	cases := []struct {
		name     string
		content  string
		fallback string
		want     string
	}{
		{"simple heading", "# Hello\nbody text\n", "note", "Hello"},
		{"leading whitespace", "   #  Spaced Title   \n", "note", "Spaced Title"},
		{"skips deeper headings", "## Not top\n# Real Title\n", "note", "Real Title"},
		{"first heading wins", "# First\n# Second\n", "note", "First"},
		{"no heading", "no heading here\n", "untitled", "untitled"},
		{"hash without space", "#nospace\n", "untitled", "untitled"},
		{"empty content", "", "untitled", "untitled"},
		{"heading later in file", "intro\n\n# Late Title\n", "note", "Late Title"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractTitle([]byte(tc.content), tc.fallback)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
