package models

import (
	"fmt"
	"math"
	"strings"
)

// ReportDraft is the body of POST /reports/.
type ReportDraft struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// Normalize trims user input in place.
func (d *ReportDraft) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.ToLower(strings.TrimSpace(d.Category))
}

// Validate returns a *ValidationError for the first invalid field.
func (d ReportDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return invalid("title", "is required")
	}
	if strings.TrimSpace(d.Description) == "" {
		return invalid("description", "is required")
	}
	if strings.TrimSpace(d.Category) == "" {
		return invalid("category", "is required")
	}
	if outside(d.Latitude, -90, 90) {
		return invalid("latitude", fmt.Sprintf("%g is outside [-90, 90]", d.Latitude))
	}
	if outside(d.Longitude, -180, 180) {
		return invalid("longitude", fmt.Sprintf("%g is outside [-180, 180]", d.Longitude))
	}
	return nil
}

// outside reports whether v is not a finite number within [min, max].
// NaN fails every comparison, so it is checked explicitly.
func outside(v, min, max float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0) || v < min || v > max
}
