// Package models defines the client-side data model of the CityReport CLI:
// the session identity, reports as returned by the API, report drafts and
// registration forms with their local validation, client-side filtering,
// and analytics aggregates.
package models
