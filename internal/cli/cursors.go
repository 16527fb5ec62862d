package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/possync/internal/app"
	"github.com/iudanet/possync/internal/models"
	"github.com/iudanet/possync/internal/server/handlers"
)

func (c *Cli) newCursorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cursors",
		Short: "Inspect or reset pull cursors",
		Long: `Operate on the cursor store directly. A bolt store is locked by a
running instance, stop it first.`,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored pull cursors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := app.OpenCursorStore(cmd.Context(), cfg.Cursor)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cursors, err := store.ListCursors(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list cursors: %w", err)
			}
			return c.printCursors(format, handlers.OrderCursors(cursors, models.TableNames(cfg.Tables())))
		},
	}
	list.Flags().String("format", "", "Output format: json or table")

	reset := &cobra.Command{
		Use:   "reset <table>",
		Short: "Reset the cursor of a table so the next cycle pulls every remote row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := app.OpenCursorStore(cmd.Context(), cfg.Cursor)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.ResetCursor(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to reset cursor of %s: %w", args[0], err)
			}
			c.io.Printf("Cursor of %s reset\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, reset)
	return cmd
}
