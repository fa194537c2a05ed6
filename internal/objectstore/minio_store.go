package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	// ErrEndpointEmpty indicates that no S3 endpoint was configured.
	ErrEndpointEmpty = errors.New("s3 endpoint cannot be empty")
	// ErrBucketEmpty indicates that no bucket was configured.
	ErrBucketEmpty = errors.New("s3 bucket cannot be empty")
	// ErrBucketMissing indicates that the configured bucket does not exist.
	ErrBucketMissing = errors.New("s3 bucket does not exist")
)

// S3Config describes an S3-compatible archive.
type S3Config struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	Region    string `toml:"region"`
	UseSSL    bool   `toml:"use_ssl"`
}

// Enabled reports whether an endpoint has been configured.
func (c S3Config) Enabled() bool {
	return c.Endpoint != ""
}

// MinioObjectStore implements core.ObjectStore on an existing S3 bucket.
type MinioObjectStore struct {
	client *minio.Client
	bucket string
}

// NewMinio connects to the endpoint and verifies that the bucket exists.
func NewMinio(ctx context.Context, cfg S3Config) (*MinioObjectStore, error) {
	if cfg.Endpoint == "" {
		return nil, ErrEndpointEmpty
	}

	if cfg.Bucket == "" {
		return nil, ErrBucketEmpty
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init S3 client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket '%s': %w", cfg.Bucket, err)
	}

	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrBucketMissing, cfg.Bucket)
	}

	return &MinioObjectStore{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Download retrieves an object from the bucket.
func (m *MinioObjectStore) Download(ctx context.Context, key string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object '%s' from bucket '%s': %w", key, m.bucket, err)
	}

	data, readErr := io.ReadAll(obj)
	closeErr := obj.Close()

	if readErr != nil {
		return nil, fmt.Errorf("failed to read object '%s': %w", key, readErr)
	}

	if closeErr != nil {
		return data, fmt.Errorf("failed to close object '%s': %w", key, closeErr)
	}

	return data, nil
}

// Upload stores data under key.
func (m *MinioObjectStore) Upload(ctx context.Context, key string, data []byte) error {
	_, err := m.client.PutObject(
		ctx,
		m.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: ContentTypeForKey(key)},
	)
	if err != nil {
		return fmt.Errorf("failed to put object '%s' to bucket '%s': %w", key, m.bucket, err)
	}

	return nil
}
