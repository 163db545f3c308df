package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	showcaseapp "github.com/portfolio/backend/internal/application/showcase"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure S3ImageStorage implements ImageStorage
var _ showcaseapp.ImageStorage = (*S3ImageStorage)(nil)

// S3ImageStorage stores images in an S3 bucket. It works with any
// S3-compatible backend (AWS S3, MinIO, etc.) via a custom endpoint.
type S3ImageStorage struct {
	client *s3.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewS3ImageStorage builds an S3 client from upload configuration.
func NewS3ImageStorage(cfg *config.UploadConfig, logger *zap.Logger) (*S3ImageStorage, error) {
	if cfg == nil {
		return nil, errors.New("upload configuration is required")
	}
	if cfg.S3Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	region := cfg.S3Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	if logger == nil {
		logger = zap.NewNop()
	}

	return &S3ImageStorage{
		client: client,
		bucket: cfg.S3Bucket,
		prefix: "projects",
		logger: logger,
	}, nil
}

// Save uploads the image and returns its public object URL.
func (s *S3ImageStorage) Save(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	key := s.prefix + "/" + objectName(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	s.logger.Debug("Stored project image",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
	)

	return s.objectURL(key), nil
}

// Remove deletes the object behind a public URL. Unknown URLs are ignored.
func (s *S3ImageStorage) Remove(ctx context.Context, publicURL string) error {
	key, ok := s.keyFromURL(publicURL)
	if !ok {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *S3ImageStorage) objectURL(key string) string {
	opts := s.client.Options()
	if opts.BaseEndpoint != nil && *opts.BaseEndpoint != "" {
		return strings.TrimSuffix(*opts.BaseEndpoint, "/") + "/" + s.bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, opts.Region, key)
}

func (s *S3ImageStorage) keyFromURL(publicURL string) (string, bool) {
	marker := "/" + s.prefix + "/"
	idx := strings.LastIndex(publicURL, marker)
	if idx < 0 {
		return "", false
	}
	return s.prefix + "/" + publicURL[idx+len(marker):], true
}
