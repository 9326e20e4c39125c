package models

// Summary counts reports by status, category and severity.
type Summary struct {
	Total      int
	ByStatus   map[Status]int
	ByCategory map[string]int
	BySeverity map[Severity]int
}

// Summarize aggregates reports for the officer queue and the admin overview.
func Summarize(reports []Report) Summary {
	s := Summary{
		Total:      len(reports),
		ByStatus:   make(map[Status]int),
		ByCategory: make(map[string]int),
		BySeverity: make(map[Severity]int),
	}
	for _, r := range reports {
		s.ByStatus[r.Status]++
		s.ByCategory[r.Category]++
		s.BySeverity[r.Severity]++
	}
	return s
}
