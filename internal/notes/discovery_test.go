package notes

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	nerrors "github.com/osushizm/memo/internal/notes/errors"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func TestEnumeratorWalk(t *testing.T) {
	root := filepath.Join(t.TempDir(), "posts")
	writeTree(t, root, map[string]string{
		"top.md":            "# Top\n",
		"a/note.md":         "# Hello\nbody text\n",
		"a/zebra.md":        "zebra\n",
		"b/untitled.md":     "no heading here\n",
		"b/readme.txt":      "not markdown\n",
		".hidden/secret.md": "# Secret\n",
		"tools/gen.md":      "# Tooling\n",
		"assets/note.md":    "# Asset\n",
		"a/.draft.md":       "# Draft\n",
	})

	enum := NewEnumerator(root, []string{".git", ".github", "tools", "assets", "__pycache__"})
	tree, err := enum.Walk()
	require.NoError(t, err)

	// Root level: one file, two surviving directories.
	require.Len(t, tree.Files, 1)
	require.Equal(t, "top.md", tree.Files[0].Filename())
	require.Len(t, tree.Dirs, 2)
	require.Equal(t, "a", tree.Dirs[0].Name)
	require.Equal(t, "b", tree.Dirs[1].Name)

	// Hidden files inside surviving directories are pruned too.
	var aNames []string
	for _, f := range tree.Dirs[0].Files {
		aNames = append(aNames, f.Filename())
	}
	require.Equal(t, []string{"note.md", "zebra.md"}, aNames)

	// Non-markdown files never appear.
	require.Len(t, tree.Dirs[1].Files, 1)
	require.Equal(t, "untitled.md", tree.Dirs[1].Files[0].Filename())
}

func TestEnumeratorNotesOrder(t *testing.T) {
	root := filepath.Join(t.TempDir(), "posts")
	writeTree(t, root, map[string]string{
		"top.md":        "x",
		"a/note.md":     "x",
		"a/zebra.md":    "x",
		"b/untitled.md": "x",
	})

	enum := NewEnumerator(root, nil)
	all, err := enum.Notes()
	require.NoError(t, err)

	var paths []string
	for _, n := range all {
		paths = append(paths, n.RelativePath)
	}
	// Deterministic depth-first order: a directory's own files first, then
	// its subdirectories, everything sorted.
	require.Equal(t, []string{"top.md", "a/note.md", "a/zebra.md", "b/untitled.md"}, paths)
}

func TestEnumeratorMissingRoot(t *testing.T) {
	enum := NewEnumerator(filepath.Join(t.TempDir(), "does-not-exist"), nil)
	_, err := enum.Walk()
	require.Error(t, err)
	require.True(t, errors.Is(err, nerrors.ErrContentRootNotFound))
}

func TestExcludedSegment(t *testing.T) {
	enum := NewEnumerator(".", []string{"tools", "assets"})
	require.True(t, enum.ExcludedSegment(".git"))
	require.True(t, enum.ExcludedSegment(".anything"))
	require.True(t, enum.ExcludedSegment("tools"))
	require.True(t, enum.ExcludedSegment("assets"))
	require.False(t, enum.ExcludedSegment("guides"))
	require.False(t, enum.ExcludedSegment("toolsmith"))
}

func TestDestinationPath(t *testing.T) {
	n := Note{RelativePath: "a/note.md", Extension: ".md"}
	require.Equal(t, "a/note.html", n.DestinationPath())

	n = Note{RelativePath: "deep/nested/doc.markdown", Extension: ".markdown"}
	require.Equal(t, "deep/nested/doc.html", n.DestinationPath())
}

func TestLoadContentMissingFile(t *testing.T) {
	n := Note{Path: filepath.Join(t.TempDir(), "gone.md")}
	err := n.LoadContent()
	require.Error(t, err)
	require.True(t, errors.Is(err, nerrors.ErrFileReadFailed))
}
