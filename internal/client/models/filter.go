package models

import (
	"cmp"
	"slices"
	"strings"
)

// SortOrder selects how ReportFilter.Apply orders its result.
type SortOrder string

const (
	SortNone     SortOrder = ""
	SortNewest   SortOrder = "newest"
	SortUpvotes  SortOrder = "upvotes"
	SortSeverity SortOrder = "severity"
)

// ReportFilter narrows a fetched report list on the client.
type ReportFilter struct {
	Search   string
	Status   Status
	Severity Severity
	Sort     SortOrder
}

// Apply returns the matching reports in the requested order. The input
// slice is not modified.
func (f ReportFilter) Apply(reports []Report) []Report {
	needle := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Report, 0, len(reports))
	for _, r := range reports {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.Severity != "" && r.Severity != f.Severity {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.Title), needle) &&
			!strings.Contains(strings.ToLower(r.Description), needle) {
			continue
		}
		out = append(out, r)
	}

	switch f.Sort {
	case SortNewest:
		slices.SortStableFunc(out, func(a, b Report) int {
			if c := cmp.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
				return c
			}
			return cmp.Compare(b.ID, a.ID)
		})
	case SortUpvotes:
		slices.SortStableFunc(out, func(a, b Report) int {
			return cmp.Compare(b.Upvotes, a.Upvotes)
		})
	case SortSeverity:
		slices.SortStableFunc(out, func(a, b Report) int {
			if c := cmp.Compare(b.Severity.Rank(), a.Severity.Rank()); c != 0 {
				return c
			}
			return cmp.Compare(b.Upvotes, a.Upvotes)
		})
	}
	return out
}

// ParseSortOrder accepts the names used on the command line.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case SortNone, SortNewest, SortUpvotes, SortSeverity:
		return o, true
	}
	return SortNone, false
}
