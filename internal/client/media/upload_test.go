package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/cityreport/internal/client/config"
)

type fakePut struct {
	mu     sync.Mutex
	inputs []*s3.PutObjectInput
	bodies  []string
	deleted []string
	err     error
}

func (f *fakePut) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

func (f *fakePut) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func stubAWS(t *testing.T, fake *fakePut) *s3.Options {
	t.Helper()
	origLoad, origNew, origNow := loadDefaultAWSConfig, newS3ClientFromConfig, now
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, now = origLoad, origNew, origNow
	})

	now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		return aws.Config{Region: lo.Region}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectAPI {
		for _, fn := range optFns {
			fn(&opts)
		}
		return fake
	}
	return &opts
}

func minioConfig() config.MediaConfig {
	return config.MediaConfig{
		Bucket:       "reports",
		Region:       "us-east-1",
		Endpoint:     "http://127.0.0.1:9000",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
		Prefix:       "photos",
		UsePathStyle: true,
	}
}

func TestNewS3Uploader_Disabled(t *testing.T) {
	_, err := NewS3Uploader(context.Background(), config.MediaConfig{})
	require.ErrorIs(t, err, ErrStorageDisabled)
}

func TestNewS3Uploader_AppliesOptions(t *testing.T) {
	opts := stubAWS(t, &fakePut{})

	_, err := NewS3Uploader(context.Background(), minioConfig())
	require.NoError(t, err)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}

func TestNewS3Uploader_LoadError(t *testing.T) {
	stubAWS(t, &fakePut{})
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no profile")
	}

	_, err := NewS3Uploader(context.Background(), minioConfig())
	require.ErrorContains(t, err, "no profile")
}

func TestS3Uploader_Upload(t *testing.T) {
	fake := &fakePut{}
	stubAWS(t, fake)

	up, err := NewS3Uploader(context.Background(), minioConfig())
	require.NoError(t, err)

	obj, err := up.Upload(context.Background(), Photo{Path: "/tmp/a.jpeg", ContentType: "image/jpeg", Data: []byte("jpeg")})
	require.NoError(t, err)

	require.Len(t, fake.inputs, 1)
	in := fake.inputs[0]
	assert.Equal(t, "reports", aws.ToString(in.Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(in.ContentType))
	assert.True(t, strings.HasPrefix(aws.ToString(in.Key), "photos/2024/05/"))
	assert.True(t, strings.HasSuffix(aws.ToString(in.Key), ".jpg"))
	assert.Equal(t, "jpeg", fake.bodies[0])
	assert.Equal(t, aws.ToString(in.Key), obj.Key)
	assert.Equal(t, "http://127.0.0.1:9000/reports/"+obj.Key, obj.URL)
}

func TestS3Uploader_Delete(t *testing.T) {
	fake := &fakePut{}
	stubAWS(t, fake)

	up, err := NewS3Uploader(context.Background(), minioConfig())
	require.NoError(t, err)

	require.NoError(t, up.Delete(context.Background(), "photos/2024/05/x.jpg"))
	assert.Equal(t, []string{"photos/2024/05/x.jpg"}, fake.deleted)

	fake.err = errors.New("access denied")
	require.ErrorContains(t, up.Delete(context.Background(), "k"), "access denied")
}

func TestS3Uploader_ObjectURL(t *testing.T) {
	u := &S3Uploader{cfg: config.MediaConfig{Bucket: "b", Region: "eu-west-1"}}
	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com/k/x.jpg", u.objectURL("k/x.jpg"))

	u.cfg.PublicBaseURL = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com/k/x.jpg", u.objectURL("k/x.jpg"))
}

type fakeUploader struct {
	mu      sync.Mutex
	calls   int
	fail    string
	deleted []string
}

func (f *fakeUploader) Upload(ctx context.Context, p Photo) (Object, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if p.Path == f.fail {
		return Object{}, errors.New("upload failed")
	}
	return Object{Key: p.Path, URL: "https://cdn/" + p.Path}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return nil
}

func TestUploadAll_PreservesOrder(t *testing.T) {
	photos := []Photo{{Path: "a"}, {Path: "b"}, {Path: "c"}, {Path: "d"}, {Path: "e"}}

	objs, err := UploadAll(context.Background(), &fakeUploader{}, photos)
	require.NoError(t, err)

	urls := make([]string, len(objs))
	for i, o := range objs {
		urls[i] = o.URL
	}
	assert.Equal(t, []string{"https://cdn/a", "https://cdn/b", "https://cdn/c", "https://cdn/d", "https://cdn/e"}, urls)
}

func TestUploadAll_FailureRemovesStoredPhotos(t *testing.T) {
	up := &fakeUploader{fail: "c"}

	_, err := UploadAll(context.Background(), up, []Photo{{Path: "a"}, {Path: "b"}, {Path: "c"}})
	require.ErrorContains(t, err, "upload failed")

	// a and b may or may not have finished before the cancellation.
	for _, k := range up.deleted {
		assert.Contains(t, []string{"a", "b"}, k)
	}
	assert.NotContains(t, up.deleted, "c")
}

func TestUploadAll_FailureRemovesEarlierUploads(t *testing.T) {
	up := &fakeUploader{fail: "d"}

	// With a limit of 3, d starts only after one of a, b, c has returned.
	_, err := UploadAll(context.Background(), up, []Photo{{Path: "a"}, {Path: "b"}, {Path: "c"}, {Path: "d"}})
	require.Error(t, err)
	assert.NotEmpty(t, up.deleted)
}

func TestUploadAll_Empty(t *testing.T) {
	objs, err := UploadAll(context.Background(), &fakeUploader{}, nil)
	require.NoError(t, err)
	assert.Empty(t, objs)
}

func TestRemove_ContinuesPastFailures(t *testing.T) {
	fake := &fakePut{err: errors.New("denied")}
	up := &S3Uploader{client: fake, cfg: minioConfig()}

	err := Remove(context.Background(), up, []Object{{Key: "a"}, {Key: "b"}})
	require.ErrorContains(t, err, "delete a")
	require.ErrorContains(t, err, "delete b")
}
