package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/possync/internal/app"
	"github.com/iudanet/possync/internal/logger"
)

const closeTimeout = 15 * time.Second

func (c *Cli) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run sync cycles on the configured interval until SIGINT/SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.Log, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer func() { _ = log.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("Starting possync", "version", c.info.Version, "commit", c.info.GitCommit)

			a, err := app.New(ctx, cfg, log.Logger, c.info.Version)
			if err != nil {
				return err
			}
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
				defer cancel()
				if err := a.Close(closeCtx); err != nil {
					log.Error("Failed to close sync engine", "error", err)
				}
			}()

			return a.Run(ctx)
		},
	}
}
