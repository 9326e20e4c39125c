package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/cityreport/internal/client/models"
)

func parseID(args []string, cmd string) (int, error) {
	if len(args) == 0 {
		return 0, usage("%s <id>", cmd)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, usage("%s <id> (got %q)", cmd, args[0])
	}
	return id, nil
}

// parseListArgs reads "list" arguments. A bare word is the category; the
// rest are key=value pairs:
//
//	list pothole status=pending sort=upvotes near=56.95,24.1 radius=500
func parseListArgs(args []string) (models.ReportQuery, models.ReportFilter, error) {
	var (
		q models.ReportQuery
		f models.ReportFilter
	)
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			if q.Category != "" {
				return q, f, usage("list [category] [key=value ...], unexpected %q", arg)
			}
			q.Category = strings.ToLower(arg)
			continue
		}

		switch strings.ToLower(key) {
		case "category":
			q.Category = strings.ToLower(value)
		case "status":
			f.Status = models.Status(strings.ToLower(value))
		case "severity":
			f.Severity = models.Severity(strings.ToLower(value))
		case "search", "q":
			f.Search = value
		case "sort":
			o, ok := models.ParseSortOrder(value)
			if !ok {
				return q, f, usage("sort=newest|upvotes|severity")
			}
			f.Sort = o
		case "near":
			pt, err := parsePoint(value)
			if err != nil {
				return q, f, err
			}
			q.Near = &pt
		case "radius":
			r, err := strconv.ParseFloat(value, 64)
			if err != nil || !finite(r) || r <= 0 {
				return q, f, usage("radius=<meters>")
			}
			q.RadiusM = r
		default:
			return q, f, usage("unknown option %q", key)
		}
	}

	if q.Near != nil && q.RadiusM == 0 {
		return q, f, usage("near=<lat,lon> needs radius=<meters>")
	}
	return q, f, nil
}

// parsePoint parses "lat,lon".
func parsePoint(s string) (models.GeoPoint, error) {
	latS, lonS, ok := strings.Cut(s, ",")
	if !ok {
		return models.GeoPoint{}, usage("expected <lat,lon>, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latS), 64)
	if err != nil {
		return models.GeoPoint{}, usage("bad latitude %q", latS)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonS), 64)
	if err != nil {
		return models.GeoPoint{}, usage("bad longitude %q", lonS)
	}
	if !finite(lat) || !finite(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return models.GeoPoint{}, usage("coordinates out of range: %s", s)
	}
	return models.GeoPoint{Lat: lat, Lon: lon}, nil
}

func parseCoordinate(s string, min, max float64, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &models.ValidationError{Field: name, Message: fmt.Sprintf("%q is not a number", s)}
	}
	if !finite(v) || v < min || v > max {
		return 0, &models.ValidationError{Field: name, Message: fmt.Sprintf("%g is outside [%g, %g]", v, min, max)}
	}
	return v, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
