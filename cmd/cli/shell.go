package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/cityreport/internal/client/cli"
)

func NewShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell (default)",
		Args:  cobra.NoArgs,
		RunE:  runShell,
	}
}

func runShell(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *cli.App) error {
		a.Run(ctx)
		return nil
	})
}
