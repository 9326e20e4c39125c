package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/cityreport/internal/client/models"
)

func printReports(w io.Writer, reports []models.Report) {
	if len(reports) == 0 {
		fmt.Fprintln(w, "No reports found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tSTATUS\tSEVERITY\tVOTES")
	for _, r := range reports {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\n",
			r.ID, shorten(r.Title, 40), models.CategoryLabel(r.Category),
			r.Status, orDash(string(r.Severity)), r.Upvotes)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%d report(s)\n", len(reports))
}

func printReport(w io.Writer, r *models.Report) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", r.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", r.Title)
	fmt.Fprintf(tw, "Category:\t%s\n", models.CategoryLabel(r.Category))
	fmt.Fprintf(tw, "Status:\t%s\n", r.Status)
	fmt.Fprintf(tw, "Severity:\t%s\n", orDash(string(r.Severity)))
	fmt.Fprintf(tw, "Upvotes:\t%d\n", r.Upvotes)
	fmt.Fprintf(tw, "Location:\t%.5f, %.5f\n", r.Latitude, r.Longitude)
	if r.CreatedAt != "" {
		fmt.Fprintf(tw, "Created:\t%s\n", r.CreatedAt)
	}
	if r.ImageURL != nil && *r.ImageURL != "" {
		fmt.Fprintf(tw, "Photo:\t%s\n", *r.ImageURL)
	}
	if r.CitizenFeedback != nil && *r.CitizenFeedback != "" {
		fmt.Fprintf(tw, "Feedback:\t%s\n", *r.CitizenFeedback)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\n%s\n", r.Description)
}

func printSummary(w io.Writer, s models.Summary) {
	fmt.Fprintf(w, "Total: %d", s.Total)
	for _, st := range models.Statuses {
		fmt.Fprintf(w, " | %s: %d", st, s.ByStatus[st])
	}
	fmt.Fprintln(w)
}

func printCategories(w io.Writer, s models.Summary) {
	cats := make([]string, 0, len(s.ByCategory))
	for c := range s.ByCategory {
		cats = append(cats, c)
	}
	slices.Sort(cats)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tREPORTS")
	for _, c := range cats {
		fmt.Fprintf(tw, "%s\t%d\n", models.CategoryLabel(c), s.ByCategory[c])
	}
	_ = tw.Flush()
}

func printHotspots(w io.Writer, hotspots []models.Hotspot) {
	if len(hotspots) == 0 {
		fmt.Fprintln(w, "No hotspots in the last 30 days.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tREPORTS\tLOCATION\tRECOMMENDATION")
	for _, h := range hotspots {
		fmt.Fprintf(tw, "%s\t%s\t%.5f, %.5f\t%s\n",
			models.CategoryLabel(h.Category), strconv.Itoa(h.ReportCount),
			h.Location.Lat, h.Location.Lon, h.Recommendation)
	}
	_ = tw.Flush()
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
