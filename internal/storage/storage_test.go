package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var objectNamePattern = regexp.MustCompile(`^[0-9a-f]{12}-\d+\.png$`)

func TestObjectName(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	a := ObjectName("Cover.PNG", now)
	b := ObjectName("Cover.PNG", now)

	assert.Regexp(t, objectNamePattern, a)
	assert.True(t, strings.HasSuffix(a, "-1700000000123.PNG"))
	assert.NotEqual(t, a, b)
	assert.NotContains(t, ObjectName("noext", now), ".")
}

func TestValidBucket(t *testing.T) {
	assert.True(t, ValidBucket(BucketProjects))
	assert.True(t, ValidBucket(BucketProducts))
	assert.True(t, ValidBucket(BucketAvatars))
	assert.False(t, ValidBucket("secrets"))
	assert.False(t, ValidBucket(""))
}

type mockPutter struct {
	mock.Mock
}

func (m *mockPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.PutObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestS3Uploader_Upload(t *testing.T) {
	putter := new(mockPutter)
	u := newS3Uploader(putter, "lumina-assets", "https://cdn.example.com")
	ctx := context.Background()

	putter.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		body, _ := io.ReadAll(in.Body)
		return *in.Bucket == "lumina-assets" &&
			strings.HasPrefix(*in.Key, "projects/") &&
			*in.ContentType == "image/png" &&
			string(body) == "png-bytes"
	})).Return(&s3.PutObjectOutput{}, nil)

	url, err := u.Upload(ctx, BucketProjects, File{Name: "a.png", ContentType: "image/png", Data: []byte("png-bytes")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/projects/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
	putter.AssertExpectations(t)
}

func TestS3Uploader_Error(t *testing.T) {
	putter := new(mockPutter)
	u := newS3Uploader(putter, "b", "https://cdn.example.com")
	putter.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	url, err := u.Upload(context.Background(), BucketAvatars, File{Name: "me.jpg"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
	assert.Empty(t, url)
}

func TestDiskUploader_Upload(t *testing.T) {
	dir := t.TempDir()
	u := NewDiskUploader(dir, "/uploads/")

	url, err := u.Upload(context.Background(), BucketProducts, File{Name: "kit.jpg", Data: []byte("jpeg")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/products/"))

	data, err := os.ReadFile(filepath.Join(dir, "products", filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
}

func TestPlaceholderUploader(t *testing.T) {
	url, err := PlaceholderUploader{}.Upload(context.Background(), BucketProjects, File{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://picsum.photos/"))
}
