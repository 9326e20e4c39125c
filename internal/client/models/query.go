package models

import (
	"net/url"
	"strconv"
)

// ReportQuery holds the filters GET /reports/ evaluates server-side.
// Near and RadiusM go together; a radius without a point is ignored.
type ReportQuery struct {
	Category string
	Near     *GeoPoint
	RadiusM  float64
}

// Values encodes q as query parameters.
func (q ReportQuery) Values() url.Values {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Near != nil && q.RadiusM > 0 {
		v.Set("lat", strconv.FormatFloat(q.Near.Lat, 'f', -1, 64))
		v.Set("lon", strconv.FormatFloat(q.Near.Lon, 'f', -1, 64))
		v.Set("radius", strconv.FormatFloat(q.RadiusM, 'f', -1, 64))
	}
	return v
}
