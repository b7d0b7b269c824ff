package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown source into an HTML fragment using goldmark.
// The renderer is stateless beyond its configured engine, so a single
// instance can be reused across every note in a run.
type Renderer struct {
	engine goldmark.Markdown
}

// DefaultExtensions are the extension names enabled when the configuration
// does not specify any.
var DefaultExtensions = []string{"fenced_code", "tables", "toc"}

// New constructs a renderer with the named extensions enabled. Unknown
// extension names are ignored rather than rejected.
func New(extensions []string) *Renderer {
	return &Renderer{engine: newEngine(extensions)}
}

// Render converts Markdown source to an HTML fragment.
func (r *Renderer) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

// newEngine builds a goldmark.Markdown for the requested extension names.
// The mapping is intentionally conservative; fenced code blocks are part of
// CommonMark core and need no extender, and "toc" maps to stable auto
// heading IDs so in-page anchors work.
func newEngine(names []string) goldmark.Markdown {
	if len(names) == 0 {
		names = DefaultExtensions
	}

	parserOptions := []parser.Option{}
	extenders := []goldmark.Extender{}
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		switch key {
		case "toc":
			parserOptions = append(parserOptions, parser.WithAutoHeadingID())
		case "fenced_code":
			// CommonMark core; accepted for configuration parity.
		default:
			if ext, ok := extensionRegistry[key]; ok {
				extenders = append(extenders, ext)
			}
		}
	}

	// Raw HTML in notes passes through untouched, matching how authors
	// expect hand-written fragments inside Markdown to behave.
	rendererOptions := []renderer.Option{html.WithUnsafe()}

	engineOptions := []goldmark.Option{
		goldmark.WithRendererOptions(rendererOptions...),
	}
	if len(parserOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithParserOptions(parserOptions...))
	}
	if len(extenders) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(extenders...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}
