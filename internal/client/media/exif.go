package media

import (
	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"

	"github.com/dmitrijs2005/cityreport/internal/client/models"
)

// GPS returns the position recorded in the image's EXIF block.
func GPS(data []byte) (models.GeoPoint, bool) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return models.GeoPoint{}, false
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return models.GeoPoint{}, false
	}

	var (
		lat, lon       []exifcommon.Rational
		latRef, lonRef string
	)
	for _, entry := range entries {
		switch entry.TagName {
		case "GPSLatitude":
			lat, _ = entry.Value.([]exifcommon.Rational)
		case "GPSLongitude":
			lon, _ = entry.Value.([]exifcommon.Rational)
		case "GPSLatitudeRef":
			latRef, _ = entry.Value.(string)
		case "GPSLongitudeRef":
			lonRef, _ = entry.Value.(string)
		}
	}

	la, ok := toDegrees(lat, latRef)
	if !ok {
		return models.GeoPoint{}, false
	}
	lo, ok := toDegrees(lon, lonRef)
	if !ok {
		return models.GeoPoint{}, false
	}
	if la < -90 || la > 90 || lo < -180 || lo > 180 {
		return models.GeoPoint{}, false
	}
	return models.GeoPoint{Lat: la, Lon: lo}, true
}

// Locate returns the first GPS position found among photos.
func Locate(photos []Photo) (models.GeoPoint, bool) {
	for _, p := range photos {
		if pt, ok := GPS(p.Data); ok {
			return pt, true
		}
	}
	return models.GeoPoint{}, false
}

// toDegrees converts degrees/minutes/seconds rationals to decimal degrees.
// "S" and "W" references are negative.
func toDegrees(dms []exifcommon.Rational, ref string) (float64, bool) {
	if len(dms) != 3 {
		return 0, false
	}

	var parts [3]float64
	for i, r := range dms {
		if r.Denominator == 0 {
			return 0, false
		}
		parts[i] = float64(r.Numerator) / float64(r.Denominator)
	}

	deg := parts[0] + parts[1]/60 + parts[2]/3600
	if ref == "S" || ref == "W" {
		deg = -deg
	}
	return deg, true
}
