package main

import (
	"os"

	"github.com/iudanet/possync/internal/cli"
	"github.com/iudanet/possync/internal/iocli"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	info := cli.NewBuildInfo(Version, BuildDate, GitCommit)
	if err := cli.NewRootCmd(info, iocli.NewStdio()).Execute(); err != nil {
		os.Exit(1)
	}
}
