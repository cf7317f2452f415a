package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader writes objects to one S3 compatible bucket, one key prefix per
// logical bucket.
type S3Uploader struct {
	client    objectPutter
	bucket    string
	publicURL string
	now       func() time.Time
}

// NewS3Uploader loads AWS credentials from the default chain. A non-empty endpoint
// switches to path-style addressing for MinIO and similar stores.
func NewS3Uploader(ctx context.Context, bucket, region, endpoint, publicURL string) (*S3Uploader, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Uploader(client, bucket, publicURL), nil
}

func newS3Uploader(client objectPutter, bucket, publicURL string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, publicURL: publicURL, now: time.Now}
}

func (u *S3Uploader) Upload(ctx context.Context, bucket string, file File) (string, error) {
	key := bucket + "/" + ObjectName(file.Name, u.now())
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(file.Data),
		ContentType:   aws.String(file.ContentType),
		ContentLength: aws.Int64(int64(len(file.Data))),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return u.publicURL + "/" + key, nil
}
