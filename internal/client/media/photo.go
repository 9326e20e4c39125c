package media

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const (
	// MaxPhotos is the number of photos one report may carry.
	MaxPhotos = 5
	// MaxPhotoSize is the largest accepted photo file.
	MaxPhotoSize = 10 << 20
)

var (
	ErrTooManyPhotos = fmt.Errorf("at most %d photos per report", MaxPhotos)
	ErrNotImage      = errors.New("not an image")
	ErrPhotoTooLarge = errors.New("photo too large")
)

// Photo is an image file read into memory.
type Photo struct {
	Path        string
	ContentType string
	Data        []byte
}

// Name is the base name of the file.
func (p Photo) Name() string {
	return filepath.Base(p.Path)
}

// Ext returns the extension matching the sniffed content type.
func (p Photo) Ext() string {
	switch p.ContentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return strings.ToLower(filepath.Ext(p.Path))
}

// LoadPhotos reads and sniffs every path. Blank paths are skipped.
func LoadPhotos(paths []string) ([]Photo, error) {
	clean := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			clean = append(clean, p)
		}
	}
	if len(clean) > MaxPhotos {
		return nil, ErrTooManyPhotos
	}

	photos := make([]Photo, 0, len(clean))
	for _, p := range clean {
		photo, err := loadPhoto(p)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, nil
}

func loadPhoto(path string) (Photo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Photo{}, fmt.Errorf("photo %s: %w", path, err)
	}
	if info.IsDir() {
		return Photo{}, fmt.Errorf("photo %s: %w", path, ErrNotImage)
	}
	if info.Size() > MaxPhotoSize {
		return Photo{}, fmt.Errorf("photo %s: %w", path, ErrPhotoTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Photo{}, fmt.Errorf("photo %s: %w", path, err)
	}

	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return Photo{}, fmt.Errorf("photo %s (%s): %w", path, ct, ErrNotImage)
	}
	return Photo{Path: path, ContentType: ct, Data: data}, nil
}
