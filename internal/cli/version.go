package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *Cli) newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return err
			}

			if format == "json" {
				output, err := json.MarshalIndent(c.info, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to format version info: %w", err)
				}
				c.io.Println(string(output))
				return nil
			}

			c.io.Printf("possync\n")
			c.io.Printf("Version:    %s\n", c.info.Version)
			c.io.Printf("Build Date: %s\n", c.info.BuildDate)
			c.io.Printf("Git Commit: %s\n", c.info.GitCommit)
			c.io.Printf("Go:         %s (%s)\n", c.info.GoVersion, c.info.Platform)
			return nil
		},
	}
	cmd.Flags().String("format", "", "Output format (json)")
	return cmd
}
