package main

import (
	"github.com/spf13/cobra"

	"github.com/talentsift/talentsift/config"
	"github.com/talentsift/talentsift/internal/agent"
	"github.com/talentsift/talentsift/internal/server"
	"github.com/talentsift/talentsift/internal/telemetry"
)

func serveCMD(cfgPath *string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			if err := cfg.EnsureFolders(); err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Address = addr
			}
			hist, err := openHistory(ctx, cfg)
			if err != nil {
				return err
			}
			if hist != nil {
				defer hist.Close()
			}

			tele := telemetry.New()
			logger := newLogger("[SCREENER] ")
			screener := agent.NewScreener(cfg, hist, tele, logger)
			runner := agent.NewRunner(screener, tele, logger)
			var runHistory server.RunHistory
			if hist != nil {
				runHistory = hist
			}
			return server.New(screener, runner, runHistory, tele.Handler(), newLogger("[HTTP] ")).Run(cfg.Server.Address)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.address)")
	return cmd
}
