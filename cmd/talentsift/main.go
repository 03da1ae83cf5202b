package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/talentsift/talentsift/config"
	"github.com/talentsift/talentsift/internal/history"
)

func main() {
	var cfgPath string
	root := &cobra.Command{
		Use:           "talentsift",
		Short:         "Resume screening and ranking agent backed by an MCP tool server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default: ./config.yaml)")
	root.AddCommand(runCMD(&cfgPath), toolsCMD(&cfgPath), fetchCMD(&cfgPath), serveCMD(&cfgPath), historyCMD(&cfgPath))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "interrupted")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(prefix string) *log.Logger {
	return log.New(os.Stdout, prefix, log.LstdFlags)
}

// openHistory connects the optional run-history store. A configured store
// that cannot be reached is fatal; an unconfigured one is simply absent.
func openHistory(ctx context.Context, cfg *config.Config) (*history.Store, error) {
	if !cfg.History.Enabled() {
		return nil, nil
	}
	return history.Open(ctx, cfg.History.RedisAddr, cfg.History.RedisPassword, cfg.History.RedisDB, cfg.History.DialTimeout)
}
