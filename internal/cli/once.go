package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iudanet/possync/internal/app"
	"github.com/iudanet/possync/internal/health"
	"github.com/iudanet/possync/internal/logger"
)

func (c *Cli) newOnceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "once",
		Short: "Run a single sync cycle, print the result and exit",
		Long: `Run a single push-then-pull cycle over all configured tables.
Exits with a non-zero status when an endpoint was unreachable or any row failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return err
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			// лог в stderr, stdout остается под результат
			log, err := logger.New(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = log.Close() }()

			ctx := cmd.Context()
			a, err := app.New(ctx, cfg, log.Logger, c.info.Version)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(context.WithoutCancel(ctx)); err != nil {
					log.Error("Failed to close sync engine", "error", err)
				}
			}()

			res := a.RunOnce(ctx)
			status := a.Health().Status()

			if err := c.printStatus(format, status, health.Summarize(res), ""); err != nil {
				return err
			}
			if !status.Healthy {
				return ErrUnhealthy
			}
			return nil
		},
	}
	cmd.Flags().String("format", "", "Output format: json or table (default: table on a terminal, json otherwise)")
	return cmd
}
