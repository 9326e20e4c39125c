package export

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/dmitrijs2005/cityreport/internal/client/models"
)

// Document is everything one export contains. Hotspots is empty for
// non-admin exports.
type Document struct {
	Title       string
	GeneratedAt time.Time
	Author      string
	Reports     []models.Report
	Hotspots    []models.Hotspot
}

// MarkdownWriter writes a Document as Markdown.
type MarkdownWriter struct {
	output io.Writer
}

func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

func (w *MarkdownWriter) Write(doc Document) error {
	md := markdown.NewMarkdown(w.output)
	summary := models.Summarize(doc.Reports)

	w.writeHeader(md, doc, summary)
	w.writeStatusSummary(md, summary)
	w.writeCategories(md, summary)
	w.writeHotspots(md, doc.Hotspots)
	w.writeReports(md, doc.Reports)

	return md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, doc Document, s models.Summary) {
	title := doc.Title
	if title == "" {
		title = "CityReport export"
	}
	md.H1(title)
	md.PlainText("")

	rows := [][]string{
		{"Generated", doc.GeneratedAt.Format("2006-01-02 15:04 MST")},
		{"Reports", strconv.Itoa(s.Total)},
	}
	if doc.Author != "" {
		rows = append(rows, []string{"Exported by", doc.Author})
	}
	md.Table(markdown.TableSet{Header: []string{"Property", "Value"}, Rows: rows})
	md.PlainText("")
}

func (w *MarkdownWriter) writeStatusSummary(md *markdown.Markdown, s models.Summary) {
	md.H2("Status")
	md.PlainText("")

	rows := make([][]string, 0, len(models.Statuses)+1)
	for _, st := range models.Statuses {
		rows = append(rows, []string{statusLabel(st), strconv.Itoa(s.ByStatus[st])})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(s.Total) + "**"})
	md.Table(markdown.TableSet{Header: []string{"Status", "Count"}, Rows: rows})
	md.PlainText("")

	if s.Total == 0 {
		md.Note("No reports matched.")
		md.PlainText("")
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Reports by status"),
		piechart.WithShowData(true),
	)
	for _, st := range models.Statuses {
		if n := s.ByStatus[st]; n > 0 {
			chart.LabelAndIntValue(statusLabel(st), uint64(n))
		}
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")

	if n := s.BySeverity[models.SeverityCritical]; n > 0 {
		md.Cautionf("%d critical report(s) need attention.", n)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeCategories(md *markdown.Markdown, s models.Summary) {
	if len(s.ByCategory) == 0 {
		return
	}
	md.H2("Categories")
	md.PlainText("")

	cats := make([]string, 0, len(s.ByCategory))
	for c := range s.ByCategory {
		cats = append(cats, c)
	}
	slices.SortFunc(cats, func(a, b string) int {
		if d := s.ByCategory[b] - s.ByCategory[a]; d != 0 {
			return d
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})

	rows := make([][]string, len(cats))
	for i, c := range cats {
		rows[i] = []string{models.CategoryLabel(c), strconv.Itoa(s.ByCategory[c])}
	}
	md.Table(markdown.TableSet{Header: []string{"Category", "Reports"}, Rows: rows})
	md.PlainText("")
}

func (w *MarkdownWriter) writeHotspots(md *markdown.Markdown, hotspots []models.Hotspot) {
	if len(hotspots) == 0 {
		return
	}
	md.H2("Predictive maintenance")
	md.PlainText("")

	rows := make([][]string, len(hotspots))
	for i, h := range hotspots {
		rows[i] = []string{
			models.CategoryLabel(h.Category),
			strconv.Itoa(h.ReportCount),
			fmt.Sprintf("%.5f, %.5f", h.Location.Lat, h.Location.Lon),
			h.Recommendation,
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Reports", "Location", "Recommendation"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeReports(md *markdown.Markdown, reports []models.Report) {
	md.H2("Reports")
	md.PlainText("")

	if len(reports) == 0 {
		md.PlainText("No reports.")
		return
	}

	rows := make([][]string, len(reports))
	for i, r := range reports {
		rows[i] = []string{
			strconv.Itoa(r.ID),
			truncate(r.Title, 50),
			models.CategoryLabel(r.Category),
			statusLabel(r.Status),
			dash(string(r.Severity)),
			strconv.Itoa(r.Upvotes),
			fmt.Sprintf("%.5f, %.5f", r.Latitude, r.Longitude),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"ID", "Title", "Category", "Status", "Severity", "Upvotes", "Location"},
		Rows:   rows,
	})
	md.PlainText("")
}

func statusLabel(s models.Status) string {
	return models.CategoryLabel(string(s))
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
