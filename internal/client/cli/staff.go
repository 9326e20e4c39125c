package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dmitrijs2005/cityreport/internal/client/export"
	"github.com/dmitrijs2005/cityreport/internal/client/models"
)

// Queue is the officer view: status counts over all reports and the
// selected ones ordered by severity.
func (a *App) Queue(ctx context.Context, args []string) error {
	if _, err := a.requireRole(models.RoleOfficer, models.RoleAdmin); err != nil {
		return err
	}

	f := models.ReportFilter{Sort: models.SortSeverity}
	if len(args) > 0 {
		f.Status = models.Status(args[0])
		if !isKnownStatus(f.Status) {
			return usage("queue [%s]", statusList())
		}
	}

	reports, err := a.api.ListReports(ctx, models.ReportQuery{})
	if err != nil {
		return err
	}

	printSummary(a.out, models.Summarize(reports))
	printReports(a.out, f.Apply(reports))
	return nil
}

// Analytics is the admin overview: totals, categories and hotspots.
func (a *App) Analytics(ctx context.Context) error {
	if _, err := a.requireRole(models.RoleAdmin); err != nil {
		return err
	}

	reports, err := a.api.ListReports(ctx, models.ReportQuery{})
	if err != nil {
		return err
	}
	hotspots, err := a.api.Hotspots(ctx)
	if err != nil {
		return err
	}

	s := models.Summarize(reports)
	printSummary(a.out, s)
	a.println()
	printCategories(a.out, s)
	a.println()
	printHotspots(a.out, hotspots)
	return nil
}

// Export writes reports and hotspots as Markdown to the file in args[0].
func (a *App) Export(ctx context.Context, args []string) error {
	id, err := a.requireRole(models.RoleAdmin)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return usage("export <file.md>")
	}
	path := args[0]

	reports, err := a.api.ListReports(ctx, models.ReportQuery{})
	if err != nil {
		return err
	}
	hotspots, err := a.api.Hotspots(ctx)
	if err != nil {
		return err
	}

	doc := export.Document{
		Title:       "CityReport export",
		GeneratedAt: a.now(),
		Author:      id.Email,
		Reports:     models.ReportFilter{Sort: models.SortSeverity}.Apply(reports),
		Hotspots:    hotspots,
	}
	if err := writeFileAtomic(path, func(w io.Writer) error { return writeExport(w, doc) }); err != nil {
		return err
	}

	a.printf("Exported %d report(s) to %s\n", len(reports), path)
	return nil
}

var writeExport = func(w io.Writer, doc export.Document) error {
	return export.NewMarkdownWriter(w).Write(doc)
}

// writeFileAtomic writes to a temporary file next to path and renames it
// into place, so a failed write leaves any existing file untouched.
func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

func isKnownStatus(s models.Status) bool {
	return slices.Contains(models.Statuses, s)
}

func statusList() string {
	names := make([]string, len(models.Statuses))
	for i, st := range models.Statuses {
		names[i] = string(st)
	}
	return strings.Join(names, "|")
}
