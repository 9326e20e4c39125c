package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/cityreport/internal/client/models"
)

// List prints reports matching the arguments, newest first unless another
// order is requested.
func (a *App) List(ctx context.Context, args []string) error {
	if _, err := a.requireLogin(); err != nil {
		return err
	}

	q, f, err := parseListArgs(args)
	if err != nil {
		return err
	}
	if f.Sort == models.SortNone {
		f.Sort = models.SortNewest
	}
	return a.listReports(ctx, q, f)
}

// Search prints reports whose title or description contains the text.
func (a *App) Search(ctx context.Context, args []string) error {
	if _, err := a.requireLogin(); err != nil {
		return err
	}
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return usage("search <text>")
	}
	return a.listReports(ctx, models.ReportQuery{}, models.ReportFilter{Search: text, Sort: models.SortNewest})
}

func (a *App) listReports(ctx context.Context, q models.ReportQuery, f models.ReportFilter) error {
	reports, err := a.api.ListReports(ctx, q)
	if err != nil {
		return err
	}
	printReports(a.out, f.Apply(reports))
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	if _, err := a.requireLogin(); err != nil {
		return err
	}
	id, err := parseID(args, "show")
	if err != nil {
		return err
	}

	r, err := a.api.GetReport(ctx, id)
	if err != nil {
		return err
	}
	printReport(a.out, r)
	return nil
}

// Upvote votes for a report and then prints the refreshed list.
func (a *App) Upvote(ctx context.Context, args []string) error {
	if _, err := a.requireLogin(); err != nil {
		return err
	}
	id, err := parseID(args, "upvote")
	if err != nil {
		return err
	}

	res, err := a.api.Upvote(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s (report #%d now has %d upvotes)\n", orDefault(res.Message, "Upvoted"), id, res.Upvotes)

	return a.listReports(ctx, models.ReportQuery{}, models.ReportFilter{Sort: models.SortNewest})
}

func (a *App) Downvote(ctx context.Context, args []string) error {
	if _, err := a.requireLogin(); err != nil {
		return err
	}
	id, err := parseID(args, "downvote")
	if err != nil {
		return err
	}

	res, err := a.api.Downvote(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s (report #%d now has %d upvotes)\n", orDefault(res.Message, "Downvoted"), id, res.Upvotes)
	return nil
}

// Verify confirms that a resolved report is fixed. Feedback is optional.
func (a *App) Verify(ctx context.Context, args []string) error {
	if _, err := a.requireLogin(); err != nil {
		return err
	}
	id, err := parseID(args, "verify")
	if err != nil {
		return err
	}

	feedback := strings.Join(args[1:], " ")
	if feedback == "" {
		if feedback, err = getSimpleText(a.reader, "Feedback (optional)", a.out); err != nil {
			return err
		}
	}

	r, err := a.api.Verify(ctx, id, feedback)
	if err != nil {
		return err
	}
	a.printf("Report #%d is now %s. Thank you!\n", r.ID, r.Status)
	return nil
}

// Reopen rejects a resolution. Feedback is required.
func (a *App) Reopen(ctx context.Context, args []string) error {
	if _, err := a.requireLogin(); err != nil {
		return err
	}
	id, err := parseID(args, "reopen")
	if err != nil {
		return err
	}

	feedback := strings.Join(args[1:], " ")
	if feedback == "" {
		if feedback, err = getSimpleText(a.reader, "What is still wrong?", a.out); err != nil {
			return err
		}
	}

	r, err := a.api.Reopen(ctx, id, feedback)
	if err != nil {
		return err
	}
	a.printf("Report #%d is now %s.\n", r.ID, r.Status)
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
