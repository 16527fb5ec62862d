// Package cli implements the possync command line.
package cli

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iudanet/possync/internal/config"
	"github.com/iudanet/possync/internal/iocli"
)

// ErrUnhealthy returned by once and status when the engine is not healthy,
// so the process exits non-zero
var ErrUnhealthy = errors.New("sync engine is unhealthy")

// BuildInfo version information set via ldflags during build
type BuildInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// NewBuildInfo fills the runtime fields
func NewBuildInfo(version, buildDate, gitCommit string) BuildInfo {
	return BuildInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// Cli общее состояние команд
type Cli struct {
	io   iocli.IO
	env  *viper.Viper
	info BuildInfo
}

// NewRootCmd creates the root command with all subcommands
func NewRootCmd(info BuildInfo, out iocli.IO) *cobra.Command {
	env := viper.New()
	env.SetEnvPrefix(config.EnvPrefix)
	env.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	env.AutomaticEnv()

	c := &Cli{io: out, env: env, info: info}

	rootCmd := &cobra.Command{
		Use:   "possync",
		Short: "Bidirectional sync between a local point-of-sale replica and a remote database",
		Long: `possync keeps an offline-capable local replica and a remote canonical
database in sync: unsynced local rows are pushed, remote changes since the
per-table cursor are pulled.`,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (env POSSYNC_CONFIG)")
	_ = env.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.AddCommand(
		c.newRunCmd(),
		c.newOnceCmd(),
		c.newStatusCmd(),
		c.newCursorsCmd(),
		c.newVersionCmd(),
	)

	return rootCmd
}

// loadConfig читает конфигурацию из --config / POSSYNC_CONFIG и окружения
func (c *Cli) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.env.GetString("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
