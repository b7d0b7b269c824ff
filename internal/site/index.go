package site

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/osushizm/memo/internal/config"
	"github.com/osushizm/memo/internal/logfields"
	"github.com/osushizm/memo/internal/metrics"
	"github.com/osushizm/memo/internal/notes"
	nerrors "github.com/osushizm/memo/internal/notes/errors"
)

// IndexBuilder writes the root-level index page: a collapsible directory
// tree mirroring the pruned content tree, each leaf linking to a rendered
// page.
type IndexBuilder struct {
	cfg      *config.Config
	enum     *notes.Enumerator
	recorder metrics.Recorder
}

// NewIndexBuilder creates an index builder sharing the given enumerator with
// the page renderer, so both passes apply identical discovery rules.
func NewIndexBuilder(cfg *config.Config, enum *notes.Enumerator) *IndexBuilder {
	return &IndexBuilder{cfg: cfg, enum: enum, recorder: metrics.NoopRecorder{}}
}

// SetRecorder injects a metrics recorder. Returns the builder for chaining.
func (b *IndexBuilder) SetRecorder(rec metrics.Recorder) *IndexBuilder {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	b.recorder = rec
	return b
}

// Build writes the index file and returns the number of link entries
// emitted. Titles may be nil (split invocation); labels then fall back to
// filename stems. A missing content root produces a placeholder page instead
// of an error.
func (b *IndexBuilder) Build(titles TitleMap) (int, error) {
	var treeHTML string
	entries := 0

	tree, err := b.enum.Walk()
	switch {
	case errors.Is(err, nerrors.ErrContentRootNotFound):
		slog.Warn("Content root not found; writing placeholder index", logfields.Path(b.enum.Root()))
		treeHTML = fmt.Sprintf("<p><b>%s/ が見つかりません。</b></p>",
			template.HTMLEscapeString(linkBase(b.cfg)))
	case err != nil:
		return 0, err
	default:
		var sb strings.Builder
		sb.WriteString("<ul>\n")
		entries = b.writeDir(&sb, tree, 0, titles)
		sb.WriteString("</ul>")
		treeHTML = sb.String()
	}

	heading := b.cfg.Site.Title
	if i := strings.Index(heading, " | "); i >= 0 {
		heading = heading[:i]
	}

	data := indexData{
		Language:    b.cfg.Site.Language,
		Title:       b.cfg.Site.Title,
		Heading:     heading,
		Description: b.cfg.Site.Description,
		Style:       baseStyle,
		Tree:        template.HTML(treeHTML),
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return 0, fmt.Errorf("execute index template: %w", err)
	}

	indexPath := filepath.Clean(b.cfg.Output.Index)
	// #nosec G306 -- index page is public content
	if err := os.WriteFile(indexPath, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", nerrors.ErrFileWriteFailed, indexPath, err)
	}

	b.recorder.SetIndexEntries(entries)
	slog.Info("Index generated", logfields.Path(indexPath), logfields.Count(entries))
	return entries, nil
}

// writeDir emits one directory level: the directory's own files first, then
// its subdirectories, both already sorted by the enumerator. Returns the
// number of file entries emitted.
func (b *IndexBuilder) writeDir(sb *strings.Builder, node *notes.Tree, depth int, titles TitleMap) int {
	indent := strings.Repeat("  ", depth)
	entries := 0

	if node.RelativePath != "" {
		fmt.Fprintf(sb, "%s<li><details open>\n", indent)
		fmt.Fprintf(sb, "%s<summary><b>%s/</b></summary>\n", indent, template.HTMLEscapeString(node.Name))
		fmt.Fprintf(sb, "%s<ul>\n", indent)
	}

	for i := range node.Files {
		note := &node.Files[i]
		label := note.Name
		if title, ok := titles[note.RelativePath]; ok {
			label = title
		}
		href := pageHref(b.cfg, note.DestinationPath())
		fmt.Fprintf(sb, "%s  <li><a href=\"%s\">%s</a> <span class=\"small\">(%s)</span></li>\n",
			indent,
			template.HTMLEscapeString(href),
			template.HTMLEscapeString(label),
			template.HTMLEscapeString(note.Filename()))
		entries++
	}

	for _, child := range node.Dirs {
		entries += b.writeDir(sb, child, depth+1, titles)
	}

	if node.RelativePath != "" {
		fmt.Fprintf(sb, "%s</ul>\n", indent)
		fmt.Fprintf(sb, "%s</details></li>\n", indent)
	}

	return entries
}
