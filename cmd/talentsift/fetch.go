package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talentsift/talentsift/config"
	"github.com/talentsift/talentsift/internal/agent"
)

func fetchCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <job-description>",
		Short: "Fetch a job description by filename or URL and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			screener := agent.NewScreener(cfg, nil, nil, newLogger("[SCREENER] "))
			text, err := screener.FetchDescription(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		},
	}
}
