package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DiskUploader writes files below dir and serves them from urlPrefix.
type DiskUploader struct {
	dir       string
	urlPrefix string
	now       func() time.Time
}

func NewDiskUploader(dir, urlPrefix string) *DiskUploader {
	return &DiskUploader{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/"), now: time.Now}
}

// Dir is the root directory files are written to.
func (u *DiskUploader) Dir() string {
	return u.dir
}

func (u *DiskUploader) Upload(ctx context.Context, bucket string, file File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	target := filepath.Join(u.dir, bucket)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("create bucket dir: %w", err)
	}
	name := ObjectName(file.Name, u.now())
	if err := os.WriteFile(filepath.Join(target, name), file.Data, 0o644); err != nil {
		return "", fmt.Errorf("write object: %w", err)
	}
	return u.urlPrefix + "/" + bucket + "/" + name, nil
}
