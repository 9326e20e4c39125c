package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status is the lifecycle state of a report on the server.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
	StatusReopened   Status = "reopened"
)

// Statuses in workflow order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusResolved, StatusClosed, StatusReopened}

// Severity is assigned by the server when a report is created.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities; unknown values rank lowest.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// Categories the backend maps to municipal departments. The server accepts
// any category string; this list drives prompts.
var Categories = []string{"pothole", "street_light", "garbage", "flooding", "graffiti", "other"}

// CategoryLabel turns a category code such as "street_light" into
// "Street Light".
func CategoryLabel(code string) string {
	words := strings.ReplaceAll(strings.TrimSpace(code), "_", " ")
	return cases.Title(language.English).String(words)
}

// Report is a citizen-submitted issue as returned by the API.
type Report struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Status          Status   `json:"status"`
	Severity        Severity `json:"severity"`
	Upvotes         int      `json:"upvotes"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	ImageURL        *string  `json:"image_url,omitempty"`
	CreatedAt       string   `json:"created_at,omitempty"`
	CitizenFeedback *string  `json:"citizen_feedback,omitempty"`
}

// VoteResult is the response of the upvote and downvote endpoints.
type VoteResult struct {
	Message string `json:"message"`
	Upvotes int    `json:"upvotes"`
}

// GeoPoint is a WGS84 coordinate.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Hotspot is one predictive-maintenance cluster from the analytics API.
type Hotspot struct {
	Category       string   `json:"category"`
	ReportCount    int      `json:"report_count"`
	Location       GeoPoint `json:"location"`
	Recommendation string   `json:"recommendation"`
}
