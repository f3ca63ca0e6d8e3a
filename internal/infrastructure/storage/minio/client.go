// Package minio stores pipeline run artifacts in an S3-compatible bucket.
package minio

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

// ObjectAPI is the part of *minio.Client the archive calls.
type ObjectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

var _ ObjectAPI = (*minio.Client)(nil)

// Config locates the archive bucket.  Region defaults to us-east-1, Bucket to
// sdfmine-runs and ConnectTimeout to ten seconds.
type Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Region          string
	Bucket          string
	ConnectTimeout  time.Duration
}

var (
	ErrBucketClosed  = errors.New(errors.ErrCodeArchiveUnavailable, "archive bucket is closed")
	ErrInvalidConfig = errors.New(errors.ErrCodeConfigInvalid, "invalid archive configuration")
)

// Bucket is a handle on one existing bucket.
type Bucket struct {
	name string

	mu  sync.RWMutex
	api ObjectAPI // nil once closed
}

// OpenBucket connects to cfg.Endpoint and creates the bucket if it is
// missing.
func OpenBucket(cfg Config, log logging.Logger) (*Bucket, error) {
	if cfg.Endpoint == "" {
		return nil, ErrInvalidConfig.WithDetail("endpoint is required")
	}
	cfg = withDefaults(cfg)

	api, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeArchiveUnavailable, "failed to create minio client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()
	return openBucket(ctx, api, cfg, log)
}

func withDefaults(cfg Config) Config {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.Bucket == "" {
		cfg.Bucket = "sdfmine-runs"
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	return cfg
}

func openBucket(ctx context.Context, api ObjectAPI, cfg Config, log logging.Logger) (*Bucket, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	cfg = withDefaults(cfg)

	exists, err := api.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.New(errors.ErrCodeArchiveUnavailable, "archive endpoint unreachable").
			WithDetail("endpoint=" + cfg.Endpoint).WithCause(err)
	}
	if !exists {
		if err := api.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, errors.New(errors.ErrCodeArchiveUnavailable, "failed to create bucket").
				WithDetail("bucket=" + cfg.Bucket).WithCause(err)
		}
		log.Info("archive bucket created", logging.String("bucket", cfg.Bucket), logging.String("region", cfg.Region))
	}

	log.Debug("archive bucket ready", logging.String("endpoint", cfg.Endpoint), logging.String("bucket", cfg.Bucket))
	return &Bucket{name: cfg.Bucket, api: api}, nil
}

func (b *Bucket) Name() string { return b.name }

func (b *Bucket) objects() (ObjectAPI, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.api == nil {
		return nil, ErrBucketClosed
	}
	return b.api, nil
}

// Close detaches the handle; minio-go holds no connection to release.
func (b *Bucket) Close() error {
	b.mu.Lock()
	b.api = nil
	b.mu.Unlock()
	return nil
}

//Personal.AI order the ending
