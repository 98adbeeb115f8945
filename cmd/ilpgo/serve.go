package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/ilpgo/internal/config"
	"github.com/rgehrsitz/ilpgo/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve projections over HTTP",
		Long: `Start the HTTP API.

  GET  /healthz
  POST /v1/projections[?format=json|csv|html|console]   body: scenario JSON
  POST /v1/comparisons?with=return_low,return_high      body: scenario JSON

The port comes from --port, then ILPGO_PORT, then 8080. When AWS_REGION is
set, scenarios may name s3:// COI tables.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			port := a.settings.Port
			if p, _ := cmd.Flags().GetInt("port"); p > 0 {
				port = p
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			loader := config.NewTableLoader(nil)
			if a.settings.AWSRegion != "" {
				fetcher, err := config.NewS3TableFetcher(ctx, a.settings.AWSRegion)
				if err != nil {
					return err
				}
				loader = config.NewTableLoader(fetcher)
			}

			srv := server.New(a.engine, loader, a.log)
			return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", port))
		},
	}
	cmd.Flags().Int("port", 0, "Listen port")
	return cmd
}
