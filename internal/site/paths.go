package site

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/osushizm/memo/internal/config"
)

// linkBase is the path from the directory holding the index file to the
// content root, slash-separated. Hrefs in the index and page back-links are
// both computed against it so the two stay consistent regardless of where
// the tool runs from.
func linkBase(cfg *config.Config) string {
	indexDir := filepath.Dir(filepath.Clean(cfg.Output.Index))
	rel, err := filepath.Rel(indexDir, filepath.Clean(cfg.Content.Root))
	if err != nil {
		return filepath.ToSlash(filepath.Clean(cfg.Content.Root))
	}
	return filepath.ToSlash(rel)
}

// pageHref returns the index-relative link target for a root-relative page path.
func pageHref(cfg *config.Config, rel string) string {
	return path.Join(linkBase(cfg), rel)
}

// backHref computes the relative link from a page back to the index from the
// page's actual depth, rather than assuming a fixed nesting level.
func backHref(cfg *config.Config, destRel string) string {
	depth := strings.Count(pageHref(cfg, destRel), "/")
	return strings.Repeat("../", depth) + filepath.Base(filepath.Clean(cfg.Output.Index))
}
