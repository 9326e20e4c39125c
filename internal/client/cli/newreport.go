package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/cityreport/internal/client/media"
	"github.com/dmitrijs2005/cityreport/internal/client/models"
)

// New walks the user through a report: text fields, category, optional
// photos, and a location taken from the photos or typed in. The draft is
// validated before any photo is uploaded or the report is sent.
func (a *App) New(ctx context.Context) error {
	if _, err := a.requireLogin(); err != nil {
		return err
	}

	var d models.ReportDraft
	var err error

	if d.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if d.Description, err = getSimpleText(a.reader, "Description", a.out); err != nil {
		return err
	}
	if d.Category, err = a.askCategory(); err != nil {
		return err
	}

	photos, err := a.askPhotos()
	if err != nil {
		return err
	}

	pt, err := a.askLocation(photos)
	if err != nil {
		return err
	}
	d.Latitude, d.Longitude = pt.Lat, pt.Lon

	d.Normalize()
	if err := d.Validate(); err != nil {
		return err
	}

	return a.submit(ctx, d, photos)
}

// Submit sends a prepared draft with photos already loaded from disk.
func (a *App) Submit(ctx context.Context, d models.ReportDraft, photoPaths []string) error {
	if _, err := a.requireLogin(); err != nil {
		return err
	}

	d.Normalize()
	if err := d.Validate(); err != nil {
		return err
	}

	photos, err := media.LoadPhotos(photoPaths)
	if err != nil {
		return err
	}
	return a.submit(ctx, d, photos)
}

func (a *App) submit(ctx context.Context, d models.ReportDraft, photos []media.Photo) error {
	var objs []media.Object
	if len(photos) > 0 {
		if a.uploader == nil {
			a.println("Photo storage is not configured; submitting without photos.")
		} else {
			var err error
			if objs, err = media.UploadAll(ctx, a.uploader, photos); err != nil {
				return fmt.Errorf("upload photos: %w", err)
			}
			attachPhotos(&d, objs)
		}
	}

	r, err := a.api.CreateReport(ctx, d)
	if err != nil {
		if rmErr := media.Remove(context.WithoutCancel(ctx), a.uploader, objs); rmErr != nil {
			a.log.Warn(ctx, "cannot remove uploaded photos", "error", rmErr)
		}
		return err
	}
	a.printf("Report #%d created (status %s, severity %s).\n", r.ID, r.Status, orDash(string(r.Severity)))
	return nil
}

// attachPhotos makes the first photo the report image and lists the rest
// at the end of the description, since a report carries one image_url.
func attachPhotos(d *models.ReportDraft, objs []media.Object) {
	if len(objs) == 0 {
		return
	}
	d.ImageURL = &objs[0].URL
	if len(objs) == 1 {
		return
	}

	var b strings.Builder
	b.WriteString(d.Description)
	b.WriteString("\n\nMore photos:")
	for _, o := range objs[1:] {
		b.WriteString("\n- ")
		b.WriteString(o.URL)
	}
	d.Description = b.String()
}

func (a *App) askCategory() (string, error) {
	labels := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		labels[i] = fmt.Sprintf("%d) %s", i+1, models.CategoryLabel(c))
	}

	answer, err := getSimpleText(a.reader, "Category: "+strings.Join(labels, ", "), a.out)
	if err != nil {
		return "", err
	}

	var n int
	if _, err := fmt.Sscanf(answer, "%d", &n); err == nil && n >= 1 && n <= len(models.Categories) {
		return models.Categories[n-1], nil
	}

	code := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(answer)), " ", "_")
	if code != "" && !slices.Contains(models.Categories, code) {
		a.printf("Note: %q is not a known category; the server may reassign it.\n", code)
	}
	return code, nil
}

func (a *App) askPhotos() ([]media.Photo, error) {
	answer, err := getSimpleText(a.reader,
		fmt.Sprintf("Photo paths, comma separated (up to %d, empty for none)", media.MaxPhotos), a.out)
	if err != nil {
		return nil, err
	}
	if answer == "" {
		return nil, nil
	}
	return media.LoadPhotos(strings.Split(answer, ","))
}

func (a *App) askLocation(photos []media.Photo) (models.GeoPoint, error) {
	if pt, ok := media.Locate(photos); ok {
		use, err := getYesNo(a.reader, fmt.Sprintf("Use photo location %.5f, %.5f?", pt.Lat, pt.Lon), true, a.out)
		if err != nil {
			return models.GeoPoint{}, err
		}
		if use {
			return pt, nil
		}
	}

	latS, err := getSimpleText(a.reader, "Latitude", a.out)
	if err != nil {
		return models.GeoPoint{}, err
	}
	lat, err := parseCoordinate(latS, -90, 90, "latitude")
	if err != nil {
		return models.GeoPoint{}, err
	}

	lonS, err := getSimpleText(a.reader, "Longitude", a.out)
	if err != nil {
		return models.GeoPoint{}, err
	}
	lon, err := parseCoordinate(lonS, -180, 180, "longitude")
	if err != nil {
		return models.GeoPoint{}, err
	}
	return models.GeoPoint{Lat: lat, Lon: lon}, nil
}
