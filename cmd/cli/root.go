package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/cityreport/internal/buildinfo"
	"github.com/dmitrijs2005/cityreport/internal/client/cli"
	"github.com/dmitrijs2005/cityreport/internal/client/config"
	"github.com/dmitrijs2005/cityreport/internal/logging"
)

// NewRootCmd creates the root command. Without a subcommand it starts the
// interactive shell.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cityreport",
		Short: "Report and follow municipal issues from the terminal",
		Long: `cityreport is a client for the CityReport service.

Citizens file reports with photos and a location, vote on and verify them.
Officers follow the triage queue and admins see analytics.

The session is kept in a local database, so a login survives restarts.`,
		Version:       buildinfo.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runShell,
	}

	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewShellCmd())
	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewRegisterCmd())
	cmd.AddCommand(NewLogoutCmd())
	cmd.AddCommand(NewWhoAmICmd())
	cmd.AddCommand(NewPingCmd())
	cmd.AddCommand(NewReportsCmd())
	cmd.AddCommand(NewAnalyticsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, cli.UserMessage(err))
		stop()
		os.Exit(1)
	}
}

// loadConfig resolves defaults, the config file and flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString(config.FlagConfig)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyFlags(cfg, cmd.Flags()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// withApp builds an App with a restored session, runs fn and closes it.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *cli.App) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := cli.NewApp(ctx, cfg, log, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()

	a.Restore(ctx)
	return fn(ctx, a)
}
