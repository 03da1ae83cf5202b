package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gorhill/cronexpr"
	"github.com/spf13/cobra"

	"github.com/talentsift/talentsift/config"
	"github.com/talentsift/talentsift/internal/agent"
	"github.com/talentsift/talentsift/internal/telemetry"
)

func runCMD(cfgPath *string) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "run <job-description>",
		Short: "Screen the resume folder against a job description file or URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			if err := cfg.EnsureFolders(); err != nil {
				return err
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

			if watch {
				return watchLoop(ctx, runner, cfg.Screening.Schedule, args[0], logger)
			}
			return runOnce(ctx, runner, args[0])
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "keep re-screening on the configured cron schedule")
	return cmd
}

func runOnce(ctx context.Context, runner *agent.Runner, ref string) error {
	outcome, err := runner.Run(ctx, ref)
	if err != nil {
		return err
	}
	fmt.Printf("screened %d candidate(s) for %q\n", len(outcome.Report.Candidates), outcome.Report.Position)
	fmt.Printf("top candidate: %s (%.1f%%), average %.1f%%\n", outcome.Report.Top.Name, outcome.Report.Top.Score, outcome.Report.AverageScore)
	fmt.Printf("report: %s\n", outcome.Path)
	return nil
}

// watchLoop screens immediately, then re-screens at every cron tick until
// the context is cancelled. A failed run is logged, not fatal; the loop only
// stops on cancellation.
func watchLoop(ctx context.Context, runner *agent.Runner, schedule, ref string, logger *log.Logger) error {
	if schedule == "" {
		return fmt.Errorf("run --watch requires screening.schedule to be configured")
	}
	expr, err := cronexpr.Parse(schedule)
	if err != nil {
		return fmt.Errorf("screening.schedule: %w", err)
	}
	for {
		if err := runOnce(ctx, runner, ref); err != nil {
			if ctx.Err() != nil {
				return err
			}
			logger.Printf("screening run failed: %v", err)
		}
		next := expr.Next(time.Now())
		if next.IsZero() {
			return fmt.Errorf("schedule %q yields no future run", schedule)
		}
		logger.Printf("next screening at %s", next.Format(time.RFC3339))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(next)):
		}
	}
}
