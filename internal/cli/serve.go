package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphsig/internal/server"
	"github.com/matzehuels/graphsig/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the signature API over HTTP",
		Long: `Serve the signature API over HTTP.

Routes: POST /v1/signature, /v1/labelling, /v1/classify, /v1/parse;
GET /healthz and /metrics. The server shuts down gracefully on interrupt.`,
		Example: `  graphsig serve --addr :9090 --cache redis://localhost:6379/0`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") && c.Config.Server.Addr != "" {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			var gatherer prometheus.Gatherer = c.registry
			if c.registry == nil {
				reg := prometheus.NewRegistry()
				observability.NewPrometheusHooks(reg).Install()
				defer observability.Reset()
				gatherer = reg
			}

			srv := server.New(runner, loggerFromContext(ctx), server.Config{
				Addr:     addr,
				Gatherer: gatherer,
			})
			printInfo("Listening on %s", StyleHighlight.Render(srv.Addr()))
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")

	return cmd
}
