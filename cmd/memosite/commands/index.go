package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/osushizm/memo/internal/config"
	"github.com/osushizm/memo/internal/logfields"
	"github.com/osushizm/memo/internal/notes"
	nerrors "github.com/osushizm/memo/internal/notes/errors"
	"github.com/osushizm/memo/internal/site"
)

// IndexCmd implements the 'index' command: rebuild only the index page.
// Without --titles the entry labels fall back to filename stems, matching a
// run where the renderer never executed.
type IndexCmd struct {
	Titles bool `help:"Derive entry labels from each note's first heading instead of its filename stem"`
}

func (i *IndexCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	enum := notes.NewEnumerator(cfg.Content.Root, cfg.Content.Exclude)

	var titles site.TitleMap
	if i.Titles {
		titles, err = scanTitles(enum)
		if err != nil {
			return err
		}
	}

	if _, err := site.NewIndexBuilder(cfg, enum).Build(titles); err != nil {
		return err
	}

	fmt.Printf("generated %s\n", cfg.Output.Index)
	return nil
}

// scanTitles extracts display titles without rendering any pages.
func scanTitles(enum *notes.Enumerator) (site.TitleMap, error) {
	titles := make(site.TitleMap)

	all, err := enum.Notes()
	if err != nil {
		if errors.Is(err, nerrors.ErrContentRootNotFound) {
			slog.Warn("Content root not found; index will use the placeholder page", logfields.Path(enum.Root()))
			return titles, nil
		}
		return nil, err
	}

	for i := range all {
		title, err := all[i].Title()
		if err != nil {
			return nil, err
		}
		titles[all[i].RelativePath] = title
	}
	return titles, nil
}
