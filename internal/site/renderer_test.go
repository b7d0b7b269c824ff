package site

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osushizm/memo/internal/config"
	"github.com/osushizm/memo/internal/notes"
)

// testConfig returns a config rooted in a fresh temp directory with the
// original layout: content under posts/, index at the site root.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg, err := config.Load(filepath.Join(dir, "no-config.yaml"))
	require.NoError(t, err)
	cfg.Content.Root = filepath.Join(dir, "posts")
	cfg.Output.Index = filepath.Join(dir, "index.html")
	return cfg
}

func writeNote(t *testing.T, cfg *config.Config, rel, content string) {
	t.Helper()
	full := filepath.Join(cfg.Content.Root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func newTestEnumerator(cfg *config.Config) *notes.Enumerator {
	return notes.NewEnumerator(cfg.Content.Root, cfg.Content.Exclude)
}

func TestRenderAllWritesPages(t *testing.T) {
	cfg := testConfig(t)
	writeNote(t, cfg, "a/note.md", "# Hello\nbody text\n")
	writeNote(t, cfg, "b/untitled.md", "no heading here\n")

	titles, err := NewRenderer(cfg, newTestEnumerator(cfg)).RenderAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, TitleMap{
		"a/note.md":     "Hello",
		"b/untitled.md": "untitled",
	}, titles)

	page, err := os.ReadFile(filepath.Join(cfg.Content.Root, "a", "note.html"))
	require.NoError(t, err)
	html := string(page)

	require.Contains(t, html, "<title>Hello</title>")
	require.Contains(t, html, "<h1>Hello</h1>")
	require.Contains(t, html, "<p>body text</p>")
	// Back link depth follows the page's actual nesting.
	require.Contains(t, html, `href="../../index.html"`)
	// Source path hint.
	require.Contains(t, html, "posts/a/note.md")
	require.Contains(t, html, "Generated: ")
	require.Contains(t, html, `lang="ja"`)
}

func TestRenderAllBackLinkDepth(t *testing.T) {
	cfg := testConfig(t)
	writeNote(t, cfg, "top.md", "# Top\n")
	writeNote(t, cfg, "x/y/deep.md", "# Deep\n")

	_, err := NewRenderer(cfg, newTestEnumerator(cfg)).RenderAll(context.Background())
	require.NoError(t, err)

	top, err := os.ReadFile(filepath.Join(cfg.Content.Root, "top.html"))
	require.NoError(t, err)
	require.Contains(t, string(top), `href="../index.html"`)

	deep, err := os.ReadFile(filepath.Join(cfg.Content.Root, "x", "y", "deep.html"))
	require.NoError(t, err)
	require.Contains(t, string(deep), `href="../../../index.html"`)
}

func TestRenderAllEscapesTitle(t *testing.T) {
	cfg := testConfig(t)
	writeNote(t, cfg, "esc.md", "# a < b & c\n")

	titles, err := NewRenderer(cfg, newTestEnumerator(cfg)).RenderAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, "a < b & c", titles["esc.md"])

	page, err := os.ReadFile(filepath.Join(cfg.Content.Root, "esc.html"))
	require.NoError(t, err)
	require.Contains(t, string(page), "<h1>a &lt; b &amp; c</h1>")
}

func TestRenderAllSkipsExcludedDirs(t *testing.T) {
	cfg := testConfig(t)
	writeNote(t, cfg, "keep.md", "# Keep\n")
	writeNote(t, cfg, "tools/skip.md", "# Skip\n")
	writeNote(t, cfg, ".hidden/skip.md", "# Skip\n")

	titles, err := NewRenderer(cfg, newTestEnumerator(cfg)).RenderAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, TitleMap{"keep.md": "Keep"}, titles)

	require.NoFileExists(t, filepath.Join(cfg.Content.Root, "tools", "skip.html"))
	require.NoFileExists(t, filepath.Join(cfg.Content.Root, ".hidden", "skip.html"))
}

func TestRenderAllMissingRoot(t *testing.T) {
	cfg := testConfig(t)
	// Content root never created.
	titles, err := NewRenderer(cfg, newTestEnumerator(cfg)).RenderAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, titles)
}

func TestRenderAllCancelled(t *testing.T) {
	cfg := testConfig(t)
	writeNote(t, cfg, "a.md", "# A\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRenderer(cfg, newTestEnumerator(cfg)).RenderAll(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
