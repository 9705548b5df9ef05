package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petasbytes/agente/internal/config"
	"github.com/petasbytes/agente/internal/provider"
	"github.com/petasbytes/agente/internal/runner"
	"github.com/petasbytes/agente/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a API HTTP em POST /agente-simples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			client, err := provider.New(a.cfg, nil)
			if err != nil {
				return err
			}
			r := runner.New(client, a.cfg.Persona, runner.SurfaceHTTP, a.log)
			srv, err := server.New(r, a.cfg.Server, a.log)
			if err != nil {
				return err
			}
			a.log.Info("starting server", zap.String("addr", a.cfg.Server.Addr))
			return srv.Run(cmd.Context(), a.cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr, default "+config.DefaultAddr+")")
	return cmd
}
