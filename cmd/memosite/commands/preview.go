package commands

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/osushizm/memo/internal/config"
	"github.com/osushizm/memo/internal/metrics"
	"github.com/osushizm/memo/internal/preview"
	"github.com/osushizm/memo/internal/site"
)

// PreviewCmd serves the generated site locally and rebuilds it on change.
type PreviewCmd struct {
	Port    int  `short:"p" help:"Preview server port (defaults to the configured port)"`
	Metrics bool `help:"Expose Prometheus metrics at /metrics"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	port := p.Port
	if port == 0 {
		port = cfg.Preview.Port
	}

	pipeline := site.NewPipeline(cfg)

	var metricsHandler http.Handler
	if p.Metrics || cfg.Preview.Metrics {
		registry := prom.NewRegistry()
		pipeline.SetRecorder(metrics.NewPrometheusRecorder(registry))
		metricsHandler = metrics.HTTPHandler(registry)
	}

	sigctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return preview.Run(sigctx, cfg, preview.Options{
		Port: port,
		Build: func(ctx context.Context) error {
			_, err := pipeline.Run(ctx)
			return err
		},
		Metrics: metricsHandler,
	})
}
