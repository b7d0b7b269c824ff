package notes

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/osushizm/memo/internal/logfields"
	nerrors "github.com/osushizm/memo/internal/notes/errors"
)

// OutputExtension is the extension rendered pages are written with.
const OutputExtension = ".html"

// Note represents a discovered Markdown note under the content root.
type Note struct {
	Path         string // Absolute path to the file
	RelativePath string // Slash-separated path relative to the content root
	Dir          string // Slash-separated directory portion of RelativePath ("" at root level)
	Name         string // File name without extension
	Extension    string // File extension including the leading dot
	Content      []byte // File content (loaded on demand)
}

// LoadContent loads the content of a note from disk.
func (n *Note) LoadContent() error {
	if n.Content != nil {
		return nil // Already loaded
	}

	content, err := os.ReadFile(n.Path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", nerrors.ErrFileReadFailed, n.Path, err)
	}

	n.Content = content
	return nil
}

// DestinationPath returns the output path for this note relative to the
// content root's parent: the same relative location with the extension
// swapped to OutputExtension.
func (n *Note) DestinationPath() string {
	return strings.TrimSuffix(n.RelativePath, n.Extension) + OutputExtension
}

// Filename returns the original file name including extension.
func (n *Note) Filename() string {
	return n.Name + n.Extension
}

// Tree is a directory node of the pruned content tree. Directories whose name
// matches the exclusion rules never appear, nor do their descendants.
type Tree struct {
	Name         string  // Directory name ("" for the content root itself)
	RelativePath string  // Slash-separated path relative to the content root
	Dirs         []*Tree // Child directories, sorted by name
	Files        []Note  // Notes directly in this directory, sorted by file name
}

// Enumerator applies the shared discovery and exclusion rules. Both the page
// renderer and the index builder consume the same enumerator so their view of
// the content tree cannot drift apart.
type Enumerator struct {
	root    string
	exclude map[string]struct{}
}

// NewEnumerator creates an enumerator rooted at the given content directory.
// The exclude list holds directory names that are pruned entirely.
func NewEnumerator(root string, exclude []string) *Enumerator {
	set := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		set[name] = struct{}{}
	}
	return &Enumerator{root: filepath.Clean(root), exclude: set}
}

// Root returns the content root path.
func (e *Enumerator) Root() string { return e.root }

// ExcludedSegment reports whether a single path segment is pruned: hidden
// names and members of the exclusion set.
func (e *Enumerator) ExcludedSegment(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, excluded := e.exclude[name]
	return excluded
}

// Walk returns the pruned content tree. Directories and files are both
// sorted at every level so repeated runs produce identical output.
// A missing content root yields ErrContentRootNotFound.
func (e *Enumerator) Walk() (*Tree, error) {
	info, err := os.Stat(e.root)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", nerrors.ErrContentRootNotFound, e.root)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", nerrors.ErrWalkFailed, e.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", nerrors.ErrContentRootNotFound, e.root)
	}

	tree, err := e.walkDir(e.root, "")
	if err != nil {
		return nil, err
	}
	return tree, nil
}

func (e *Enumerator) walkDir(dir, rel string) (*Tree, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", nerrors.ErrWalkFailed, dir, err)
	}

	node := &Tree{Name: path.Base(rel), RelativePath: rel}
	if rel == "" {
		node.Name = ""
	}

	// os.ReadDir returns entries sorted by name, which gives us the
	// deterministic per-level ordering both passes rely on.
	for _, entry := range entries {
		name := entry.Name()
		if e.ExcludedSegment(name) {
			slog.Debug("Skipping excluded entry", logfields.Dir(rel), logfields.File(name))
			continue
		}

		if entry.IsDir() {
			child, err := e.walkDir(filepath.Join(dir, name), path.Join(rel, name))
			if err != nil {
				return nil, err
			}
			node.Dirs = append(node.Dirs, child)
			continue
		}

		if !isMarkdownFile(name) {
			continue
		}

		ext := filepath.Ext(name)
		node.Files = append(node.Files, Note{
			Path:         filepath.Join(dir, name),
			RelativePath: path.Join(rel, name),
			Dir:          rel,
			Name:         strings.TrimSuffix(name, ext),
			Extension:    ext,
		})
	}

	return node, nil
}

// Notes returns all eligible notes as a flat list in depth-first order:
// a directory's own files first, then its subdirectories.
func (e *Enumerator) Notes() ([]Note, error) {
	tree, err := e.Walk()
	if err != nil {
		return nil, err
	}
	return tree.AllNotes(), nil
}

// AllNotes flattens the tree depth-first, files before subdirectories.
func (t *Tree) AllNotes() []Note {
	notes := make([]Note, 0, len(t.Files))
	notes = append(notes, t.Files...)
	for _, dir := range t.Dirs {
		notes = append(notes, dir.AllNotes()...)
	}
	return notes
}

// isMarkdownFile checks if a file is a markdown file.
func isMarkdownFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".md" || ext == ".markdown" || ext == ".mdown" || ext == ".mkd"
}
