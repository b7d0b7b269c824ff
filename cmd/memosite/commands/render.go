package commands

import (
	"context"
	"fmt"

	"github.com/osushizm/memo/internal/config"
	"github.com/osushizm/memo/internal/notes"
	"github.com/osushizm/memo/internal/site"
)

// RenderCmd implements the 'render' command: pages only, no index.
type RenderCmd struct{}

func (r *RenderCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	enum := notes.NewEnumerator(cfg.Content.Root, cfg.Content.Exclude)
	titles, err := site.NewRenderer(cfg, enum).RenderAll(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("rendered: %d pages under %s\n", len(titles), cfg.Content.Root)
	return nil
}
