package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Buckets accepted by the uploaders.
const (
	BucketProjects = "projects"
	BucketProducts = "products"
	BucketAvatars  = "avatars"
)

var buckets = map[string]struct{}{
	BucketProjects: {},
	BucketProducts: {},
	BucketAvatars:  {},
}

// ValidBucket reports whether name is one of the known buckets.
func ValidBucket(name string) bool {
	_, ok := buckets[name]
	return ok
}

// File is a single uploaded file held in memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Uploader stores a file under a bucket and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, bucket string, file File) (string, error)
}

// ObjectName builds a collision resistant object name of the form
// <random token>-<unix millis><ext>, keeping the original extension as given.
func ObjectName(original string, now time.Time) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s-%d%s", token, now.UnixMilli(), filepath.Ext(original))
}
