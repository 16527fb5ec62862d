package cli

import (
	"github.com/spf13/cobra"

	"github.com/iudanet/possync/internal/client"
	"github.com/iudanet/possync/internal/server/token"
)

func (c *Cli) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Query the status API of a running instance",
		Long: `Query /api/v1/status of a running 'possync run'. When the instance
protects its API, pass --token or set POSSYNC_SERVER_AUTH_SECRET to mint one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			format, _ := flags.GetString("format")
			url, _ := flags.GetString("url")
			tok, _ := flags.GetString("token")

			if tok == "" {
				if secret := c.env.GetString("server.auth_secret"); secret != "" {
					var err error
					tok, err = token.Generate([]byte(secret), "possync-cli", token.DefaultTTL)
					if err != nil {
						return err
					}
				}
			}

			resp, err := client.NewClient(url, tok).Status(cmd.Context())
			if err != nil {
				return err
			}

			if err := c.printStatus(format, resp.Health, resp.LastCycle, resp.Version); err != nil {
				return err
			}
			if !resp.Health.Healthy {
				return ErrUnhealthy
			}
			return nil
		},
	}

	cmd.Flags().String("url", "http://127.0.0.1:8080", "Base URL of the status server")
	cmd.Flags().String("token", "", "Bearer token for the status API")
	cmd.Flags().String("format", "", "Output format: json or table")
	return cmd
}
