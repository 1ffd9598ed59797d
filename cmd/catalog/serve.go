package main

import (
	"github.com/spf13/cobra"

	"github.com/Sternrassler/catalog-client/internal/server"
	"github.com/Sternrassler/catalog-client/pkg/logging"
)

func serveCmd(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := root.app

			cfg := server.DefaultConfig()
			cfg.Addr = ":" + a.cfg.Port
			if addr != "" {
				cfg.Addr = addr
			}

			a.logger.Info().
				Str("addr", cfg.Addr).
				Str("base_url", a.cfg.BaseURL).
				Str("user_agent", a.cfg.UserAgent).
				Bool("cache", a.redis != nil).
				Msg("Serve configuration")

			srv := server.New(cfg, a.repo, a.repo, a.redis, logging.NewLogger("server"))
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :$PORT)")
	return cmd
}
