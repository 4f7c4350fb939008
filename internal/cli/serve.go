package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gavtree/internal/api"
	"github.com/matzehuels/gavtree/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the resolution, registry and security operations over HTTP.

Metrics are exposed in Prometheus format at /metrics. The server shuts down
gracefully on interrupt.`,
		Example: `  gavtree serve
  gavtree serve --addr 127.0.0.1:9000
  GAVTREE_CACHE_BACKEND=redis GAVTREE_REDIS_URL=redis://cache:6379/0 gavtree serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := c.settings()
			if addr == "" {
				addr = cfg.Server.Addr
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			hooks := observability.NewPrometheus(reg).Hooks()

			runner, err := c.runnerFn(ctx, hooks)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := api.New(runner, api.Options{
				Logger:  logger,
				Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
			})
			logger.Info("serving", "addr", addr, "cache", cfg.Cache.Backend)
			return srv.ListenAndServe(ctx, addr, cfg.Server.ReadTimeout.Duration, cfg.Server.WriteTimeout.Duration)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
