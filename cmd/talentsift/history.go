package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talentsift/talentsift/config"
)

func historyCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List past screening runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			if !cfg.History.Enabled() {
				return fmt.Errorf("run history is not configured (set history.redis_addr)")
			}
			store, err := openHistory(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(ctx)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no recorded runs")
				return nil
			}
			for _, r := range runs {
				fmt.Printf("%s  %-30s  %d candidate(s)  avg %.1f%%  top %s (%.1f%%)  %s\n",
					r.CreatedAt.Format("2006-01-02 15:04"), r.Position, r.Candidates, r.AverageScore, r.TopCandidate, r.TopScore, r.ReportPath)
			}
			return nil
		},
	}
}
