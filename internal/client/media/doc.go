// Package media handles report photos: loading them from disk, reading the
// GPS position a camera stored in their EXIF block, and uploading them to
// S3-compatible object storage.
package media
