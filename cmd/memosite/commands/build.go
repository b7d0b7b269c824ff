package commands

import (
	"context"
	"fmt"

	"github.com/osushizm/memo/internal/config"
	"github.com/osushizm/memo/internal/site"
)

// BuildCmd implements the 'build' command: the full two-phase pipeline.
type BuildCmd struct{}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if _, err := site.NewPipeline(cfg).Run(context.Background()); err != nil {
		return err
	}

	fmt.Printf("built: %s html + %s\n", cfg.Content.Root, cfg.Output.Index)
	return nil
}
