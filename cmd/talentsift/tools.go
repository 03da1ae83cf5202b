package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talentsift/talentsift/config"
	"github.com/talentsift/talentsift/internal/agent"
)

func toolsCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Discover and print the server's tool catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			screener := agent.NewScreener(cfg, nil, nil, newLogger("[SCREENER] "))
			tools, err := screener.Tools(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range tools {
				fmt.Printf("%s\t%s\n", t.Name, t.Description)
			}
			return nil
		},
	}
}
