package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the go-link HTTP server",
		Long: `Run the go-link HTTP server.

  GET  /go/{query}  redirect to the best matching link
  GET  /api/links   list links as JSON
  POST /api/reload  reload the configuration file
  GET  /healthz, /readyz, /api/status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := ctx.ensurePrefs()
			if err != nil {
				return err
			}
			if l := strings.TrimSpace(listen); l != "" {
				prefs.ListenAddr = l
			}

			a, err := ctx.application(cmd, "info")
			if err != nil {
				return err
			}
			defer func() { _ = ctx.log.Sync() }()

			return a.Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Listen address (overrides listen_addr)")
	return cmd
}
