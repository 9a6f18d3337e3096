// Package storage uploads doctor photos and user avatars to S3. Only the
// resulting URL is persisted on the documents.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ImageStore is what the handlers depend on.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

type S3Store struct {
	uploader *manager.Uploader
	bucket   string
	region   string
	prefix   string
}

func NewS3Store(ctx context.Context, region, bucket, prefix string) (*S3Store, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg)
	return &S3Store{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		region:   region,
		prefix:   prefix,
	}, nil
}

// Upload downscales the image if needed, stores it under a random key and
// returns the public object URL.
func (s *S3Store) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	processed, err := Normalize(data)
	if err != nil {
		return "", err
	}

	key := s.prefix + "/" + uuid.NewString() + path.Ext(filename)
	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(processed),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
