package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/cityreport/internal/client/cli"
)

const (
	flagEmail    = "email"
	flagPassword = "password"
)

// NewLoginCmd creates the login command. Missing credentials are prompted
// for; the password is read without echo.
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString(flagEmail)
			password, _ := cmd.Flags().GetString(flagPassword)

			return withApp(cmd, func(ctx context.Context, a *cli.App) error {
				if email != "" && password != "" {
					return a.LoginWith(ctx, email, password)
				}
				return a.Login(ctx)
			})
		},
	}
	cmd.Flags().StringP(flagEmail, "e", "", "account email")
	cmd.Flags().String(flagPassword, "", "account password (prompted when empty)")
	return cmd
}

// NewRegisterCmd creates the register command. With both flags set it
// runs without prompts, which makes it usable from scripts.
func NewRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString(flagEmail)
			password, _ := cmd.Flags().GetString(flagPassword)

			return withApp(cmd, func(ctx context.Context, a *cli.App) error {
				if email != "" && password != "" {
					return a.RegisterWith(ctx, email, password)
				}
				return a.Register(ctx)
			})
		},
	}
	cmd.Flags().StringP(flagEmail, "e", "", "account email")
	cmd.Flags().String(flagPassword, "", "account password (prompted when empty)")
	return cmd
}

func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *cli.App) error {
				return a.Logout(ctx)
			})
		},
	}
}

func NewWhoAmICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the logged-in user and role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *cli.App) error {
				return a.WhoAmI(ctx)
			})
		},
	}
}

func NewPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *cli.App) error {
				return a.Ping(ctx)
			})
		},
	}
}
