package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/cityreport/internal/client/cli"
	"github.com/dmitrijs2005/cityreport/internal/client/models"
)

// NewReportsCmd groups the report commands.
func NewReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reports",
		Aliases: []string{"report", "r"},
		Short:   "List, show, create and vote on reports",
	}
	cmd.AddCommand(newReportsListCmd())
	cmd.AddCommand(newReportsShowCmd())
	cmd.AddCommand(newReportsNewCmd())
	cmd.AddCommand(newReportsActionCmd("upvote <id>", "Upvote a report", cobra.ExactArgs(1), (*cli.App).Upvote))
	cmd.AddCommand(newReportsActionCmd("downvote <id>", "Downvote a report", cobra.ExactArgs(1), (*cli.App).Downvote))
	cmd.AddCommand(newReportsActionCmd("verify <id> [feedback...]", "Confirm a resolved report is fixed",
		cobra.MinimumNArgs(1), (*cli.App).Verify))
	cmd.AddCommand(newReportsActionCmd("reopen <id> [feedback...]", "Reopen a resolved report that is not fixed",
		cobra.MinimumNArgs(1), (*cli.App).Reopen))
	cmd.AddCommand(newReportsQueueCmd())
	cmd.AddCommand(newReportsExportCmd())
	return cmd
}

func newReportsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [category]",
		Short: "List reports",
		Long: `List reports, newest first.

Examples:
  cityreport reports list
  cityreport reports list pothole --status pending --sort upvotes
  cityreport reports list --near 56.95,24.1 --radius 500`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listArgs := append([]string(nil), args...)
			for _, name := range []string{"status", "severity", "sort", "search", "near", "radius"} {
				if v, _ := cmd.Flags().GetString(name); v != "" {
					listArgs = append(listArgs, name+"="+v)
				}
			}
			return withApp(cmd, func(ctx context.Context, a *cli.App) error {
				return a.List(ctx, listArgs)
			})
		},
	}
	cmd.Flags().String("status", "", "only reports in this status")
	cmd.Flags().String("severity", "", "only reports with this severity")
	cmd.Flags().String("sort", "", "newest, upvotes or severity")
	cmd.Flags().String("search", "", "text to look for in title and description")
	cmd.Flags().String("near", "", "center point as lat,lon (requires --radius)")
	cmd.Flags().String("radius", "", "search radius in meters")
	return cmd
}

func newReportsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *cli.App) error {
				return a.Show(ctx, args)
			})
		},
	}
}

// newReportsNewCmd submits a report from flags, or walks through the
// prompts when title, description or category is missing.
func newReportsNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "File a new report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			title, _ := f.GetString("title")
			description, _ := f.GetString("description")
			category, _ := f.GetString("category")
			lat, _ := f.GetFloat64("lat")
			lon, _ := f.GetFloat64("lon")
			photos, _ := f.GetStringSlice("photo")

			return withApp(cmd, func(ctx context.Context, a *cli.App) error {
				if title == "" || description == "" || category == "" {
					return a.New(ctx)
				}
				d := models.ReportDraft{
					Title: title, Description: description, Category: category,
					Latitude: lat, Longitude: lon,
				}
				return a.Submit(ctx, d, photos)
			})
		},
	}
	cmd.Flags().String("title", "", "short title")
	cmd.Flags().String("description", "", "what is wrong")
	cmd.Flags().String("category", "", "category code, e.g. pothole")
	cmd.Flags().Float64("lat", 0, "latitude")
	cmd.Flags().Float64("lon", 0, "longitude")
	cmd.Flags().StringSlice("photo", nil, "photo file (repeatable, up to 5)")
	return cmd
}

// newReportsActionCmd wraps an App command that takes a report id first.
func newReportsActionCmd(use, short string, validate cobra.PositionalArgs,
	fn func(*cli.App, context.Context, []string) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  validate,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("invalid report id %q", args[0])
			}
			return withApp(cmd, func(ctx context.Context, a *cli.App) error {
				return fn(a, ctx, args)
			})
		},
	}
}

func newReportsQueueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "queue [status]",
		Short: "Triage queue ordered by severity (officer, admin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *cli.App) error {
				return a.Queue(ctx, args)
			})
		},
	}
}

func newReportsExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.md>",
		Short: "Export reports and hotspots as Markdown (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *cli.App) error {
				return a.Export(ctx, args)
			})
		},
	}
}

func NewAnalyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Report totals and predictive-maintenance hotspots (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *cli.App) error {
				return a.Analytics(ctx)
			})
		},
	}
}
