// Package export renders report lists and analytics as GitHub-flavoured
// Markdown, including a mermaid pie chart of report statuses.
package export
