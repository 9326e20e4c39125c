package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/cityreport/internal/client/config"
)

// maxParallelUploads bounds concurrent PutObject calls for one report.
const maxParallelUploads = 3

var ErrStorageDisabled = errors.New("photo storage is not configured")

// Object is an uploaded photo.
type Object struct {
	Key string
	URL string
}

// Uploader stores photos and removes them again.
type Uploader interface {
	Upload(ctx context.Context, p Photo) (Object, error)
	Delete(ctx context.Context, key string) error
}

type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
	now = time.Now
)

type S3Uploader struct {
	client objectAPI
	cfg    config.MediaConfig
}

// NewS3Uploader builds an uploader for the configured bucket.
func NewS3Uploader(ctx context.Context, cfg config.MediaConfig) (*S3Uploader, error) {
	if !cfg.Enabled() {
		return nil, ErrStorageDisabled
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return &S3Uploader{client: client, cfg: cfg}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, p Photo) (Object, error) {
	key := u.objectKey(p)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(p.Data),
		ContentType: aws.String(p.ContentType),
	})
	if err != nil {
		return Object{}, fmt.Errorf("upload %s: %w", p.Name(), err)
	}
	return Object{Key: key, URL: u.objectURL(key)}, nil
}

func (u *S3Uploader) Delete(ctx context.Context, key string) error {
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// objectKey is <prefix>/<yyyy>/<mm>/<uuid><ext>.
func (u *S3Uploader) objectKey(p Photo) string {
	t := now().UTC()
	name := uuid.NewString() + p.Ext()
	return path.Join(strings.Trim(u.cfg.Prefix, "/"), t.Format("2006"), t.Format("01"), name)
}

func (u *S3Uploader) objectURL(key string) string {
	switch {
	case u.cfg.PublicBaseURL != "":
		return strings.TrimRight(u.cfg.PublicBaseURL, "/") + "/" + key
	case u.cfg.Endpoint != "":
		return strings.TrimRight(u.cfg.Endpoint, "/") + "/" + u.cfg.Bucket + "/" + key
	default:
		host := u.cfg.Bucket + ".s3." + u.cfg.Region + ".amazonaws.com"
		return (&url.URL{Scheme: "https", Host: host, Path: "/" + key}).String()
	}
}

// UploadAll uploads photos concurrently and returns the objects in input
// order. The first failure cancels the remaining uploads, and the photos
// already stored are removed before the error is returned.
func UploadAll(ctx context.Context, up Uploader, photos []Photo) ([]Object, error) {
	objs := make([]Object, len(photos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelUploads)
	for i, p := range photos {
		g.Go(func() error {
			o, err := up.Upload(gctx, p)
			if err != nil {
				return err
			}
			objs[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		stored := slices.DeleteFunc(objs, func(o Object) bool { return o.Key == "" })
		if rmErr := Remove(context.WithoutCancel(ctx), up, stored); rmErr != nil {
			return nil, errors.Join(err, rmErr)
		}
		return nil, err
	}
	return objs, nil
}

// Remove deletes every object, continuing past failures.
func Remove(ctx context.Context, up Uploader, objs []Object) error {
	var errs []error
	for _, o := range objs {
		if err := up.Delete(ctx, o.Key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
