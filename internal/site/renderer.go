package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/osushizm/memo/internal/config"
	"github.com/osushizm/memo/internal/logfields"
	"github.com/osushizm/memo/internal/markdown"
	"github.com/osushizm/memo/internal/metrics"
	"github.com/osushizm/memo/internal/notes"
	nerrors "github.com/osushizm/memo/internal/notes/errors"
)

// TitleMap maps a note's root-relative path to its derived display title.
// Built by the Renderer, consumed read-only by the IndexBuilder; created
// fresh each run.
type TitleMap map[string]string

// Renderer converts every eligible note under the content root into a
// standalone HTML page.
type Renderer struct {
	cfg      *config.Config
	enum     *notes.Enumerator
	markdown *markdown.Renderer
	recorder metrics.Recorder
	now      func() time.Time
}

// NewRenderer creates a page renderer sharing the given enumerator with the
// index builder.
func NewRenderer(cfg *config.Config, enum *notes.Enumerator) *Renderer {
	return &Renderer{
		cfg:      cfg,
		enum:     enum,
		markdown: markdown.New(cfg.Content.Extensions),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
}

// SetRecorder injects a metrics recorder. Returns the renderer for chaining.
func (r *Renderer) SetRecorder(rec metrics.Recorder) *Renderer {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	r.recorder = rec
	return r
}

// RenderAll renders every eligible note to its destination path and returns
// the title map. A missing content root yields an empty map, not an error;
// any read, render, or write failure aborts the run.
func (r *Renderer) RenderAll(ctx context.Context) (TitleMap, error) {
	titles := make(TitleMap)

	all, err := r.enum.Notes()
	if err != nil {
		if errors.Is(err, nerrors.ErrContentRootNotFound) {
			slog.Warn("Content root not found; nothing to render", logfields.Path(r.enum.Root()))
			return titles, nil
		}
		return nil, err
	}

	generated := r.now().Format("2006-01-02 15:04:05")

	for i := range all {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		note := &all[i]
		title, err := r.renderNote(note, generated)
		if err != nil {
			return nil, err
		}

		titles[note.RelativePath] = title
		r.recorder.IncPagesRendered()
		slog.Debug("Rendered page",
			logfields.File(note.RelativePath),
			logfields.Title(title))
	}

	slog.Info("Pages rendered", logfields.Count(len(titles)))
	return titles, nil
}

// renderNote renders a single note and writes the page next to its source.
func (r *Renderer) renderNote(note *notes.Note, generated string) (string, error) {
	if err := note.LoadContent(); err != nil {
		return "", err
	}
	title := notes.ExtractTitle(note.Content, note.Name)

	body, err := r.markdown.Render(note.Content)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", note.RelativePath, err)
	}

	data := pageData{
		Language:   r.cfg.Site.Language,
		Title:      title,
		Style:      baseStyle,
		BackHref:   backHref(r.cfg, note.DestinationPath()),
		SourcePath: pageHref(r.cfg, note.RelativePath),
		Body:       template.HTML(body),
		Generated:  generated,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute page template for %s: %w", note.RelativePath, err)
	}

	dest := strings.TrimSuffix(note.Path, note.Extension) + notes.OutputExtension
	// #nosec G306 -- rendered pages are public content
	if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("%w: %s: %w", nerrors.ErrFileWriteFailed, dest, err)
	}

	return title, nil
}
