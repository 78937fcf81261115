package main

import (
	"context"
	"fmt"

	"github.com/samcharles93/assetcodec/internal/version"

	"github.com/urfave/cli/v3"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			info := version.Resolve()
			fmt.Fprintf(cmd.Root().Writer, "version:    %s\n", info.Version)
			if info.Commit != "" {
				fmt.Fprintf(cmd.Root().Writer, "commit:     %s\n", info.Commit)
			}
			if info.BuildTime != "" {
				fmt.Fprintf(cmd.Root().Writer, "build time: %s\n", info.BuildTime)
			}
			return nil
		},
	}
}
