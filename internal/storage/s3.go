// AngelaMos | 2026
// s3.go

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/carterperez-dev/dealership/internal/config"
)

var (
	ErrTooLarge        = errors.New("file exceeds maximum size")
	ErrUnsupportedType = errors.New("file type not allowed")
	ErrEmptyFile       = errors.New("file is empty")
)

// Object is one file to be written to the bucket.
type Object struct {
	Key         string
	ContentType string
	Size        int64
	Body        io.Reader
}

// S3Store writes listing images to an S3-compatible bucket and hands back
// their public URLs.
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	maxFileSize   int64
	allowedTypes  []string
}

func NewS3Store(cfg config.StorageConfig) *S3Store {
	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.UsePathStyle,
	}

	if cfg.AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)
	}

	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	return newS3Store(s3.New(opts), cfg)
}

func newS3Store(client *s3.Client, cfg config.StorageConfig) *S3Store {
	base := cfg.PublicBaseURL
	if base == "" {
		base = defaultPublicBase(cfg)
	}

	return &S3Store{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(base, "/"),
		maxFileSize:   cfg.MaxFileSize,
		allowedTypes:  cfg.AllowedTypes,
	}
}

func defaultPublicBase(cfg config.StorageConfig) string {
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

// Check applies the size and content type limits without touching the
// bucket.
func (s *S3Store) Check(contentType string, size int64) error {
	if size <= 0 {
		return ErrEmptyFile
	}
	if s.maxFileSize > 0 && size > s.maxFileSize {
		return fmt.Errorf("%w (%d bytes)", ErrTooLarge, s.maxFileSize)
	}
	if len(s.allowedTypes) > 0 && !slices.Contains(s.allowedTypes, contentType) {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	return nil
}

// Put stores obj under its key and returns the public URL. Existing keys
// are never overwritten.
func (s *S3Store) Put(ctx context.Context, obj Object) (string, error) {
	if err := s.Check(obj.ContentType, obj.Size); err != nil {
		return "", err
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(obj.Key),
		Body:          obj.Body,
		ContentType:   aws.String(obj.ContentType),
		ContentLength: aws.Int64(obj.Size),
		IfNoneMatch:   aws.String("*"),
		CacheControl:  aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("put object %q: %w", obj.Key, err)
	}

	return s.PublicURL(obj.Key), nil
}

func (s *S3Store) PublicURL(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return s.publicBaseURL + "/" + strings.Join(parts, "/")
}

// Ping checks that the bucket is reachable with the configured
// credentials.
func (s *S3Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("head bucket %q: %w", s.bucket, err)
	}
	return nil
}
