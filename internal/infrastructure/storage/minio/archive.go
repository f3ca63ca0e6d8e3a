package minio

import (
	"context"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/SDF-Library-Mining/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

var ErrInvalidRequest = errors.New(errors.ErrCodeBadRequest, "invalid archive request")

// RunArchive uploads the files of one pipeline run under a common prefix.
type RunArchive interface {
	UploadFile(ctx context.Context, objectKey, localPath string, metadata map[string]string) (*UploadResult, error)
	UploadRun(ctx context.Context, runID string, localPaths []string, metadata map[string]string) ([]*UploadResult, error)
	// List returns the objects stored under runID.
	List(ctx context.Context, runID string) ([]*ObjectMetadata, error)
}

type UploadResult struct {
	Bucket     string
	ObjectKey  string
	ETag       string
	Size       int64
	UploadedAt time.Time
}

type ObjectMetadata struct {
	ObjectKey    string
	Size         int64
	ETag         string
	LastModified time.Time
}

type minioArchive struct {
	bucket *Bucket
	prefix string
	logger logging.Logger
}

// NewRunArchive builds a RunArchive.  Object keys are
// {prefix}/{runID}/{file name}.
func NewRunArchive(bucket *Bucket, prefix string, log logging.Logger) RunArchive {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &minioArchive{
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: log,
	}
}

// RunKey returns the object key for a file of a run.
func (a *minioArchive) RunKey(runID, localPath string) string {
	return path.Join(a.prefix, runID, filepath.Base(localPath))
}

func (a *minioArchive) UploadFile(ctx context.Context, objectKey, localPath string, metadata map[string]string) (*UploadResult, error) {
	if objectKey == "" || localPath == "" {
		return nil, ErrInvalidRequest
	}
	api, err := a.bucket.objects()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(localPath)
	if err != nil {
		return nil, errors.New(errors.ErrCodeIOFailed, "failed to open artifact").
			WithDetail("path=" + localPath).WithCause(err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, errors.New(errors.ErrCodeIOFailed, "failed to stat artifact").
			WithDetail("path=" + localPath).WithCause(err)
	}

	opts := minio.PutObjectOptions{
		ContentType:  contentType(localPath),
		UserMetadata: metadata,
	}
	info, err := api.PutObject(ctx, a.bucket.Name(), objectKey, f, stat.Size(), opts)
	if err != nil {
		return nil, errors.New(errors.ErrCodeArchiveUploadFailed, "upload failed").
			WithDetail("key=" + objectKey).WithCause(err)
	}

	a.logger.Debug("artifact uploaded",
		logging.String("key", objectKey),
		logging.Int("bytes", int(info.Size)))
	return &UploadResult{
		Bucket:     info.Bucket,
		ObjectKey:  info.Key,
		ETag:       info.ETag,
		Size:       info.Size,
		UploadedAt: time.Now(),
	}, nil
}

// UploadRun uploads every file and stops at the first failure.
func (a *minioArchive) UploadRun(ctx context.Context, runID string, localPaths []string, metadata map[string]string) ([]*UploadResult, error) {
	if runID == "" {
		return nil, ErrInvalidRequest.WithDetail("run id is required")
	}
	results := make([]*UploadResult, 0, len(localPaths))
	for _, p := range localPaths {
		res, err := a.UploadFile(ctx, a.RunKey(runID, p), p, metadata)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	a.logger.Info("run archived",
		logging.String("run_id", runID),
		logging.String("bucket", a.bucket.Name()),
		logging.Int("objects", len(results)))
	return results, nil
}

func (a *minioArchive) List(ctx context.Context, runID string) ([]*ObjectMetadata, error) {
	if runID == "" {
		return nil, ErrInvalidRequest.WithDetail("run id is required")
	}
	api, err := a.bucket.objects()
	if err != nil {
		return nil, err
	}
	// Cancelling stops the listing goroutine when we return early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prefix := path.Join(a.prefix, runID) + "/"
	out := make([]*ObjectMetadata, 0)
	for obj := range api.ListObjects(ctx, a.bucket.Name(), minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, errors.Wrap(obj.Err, errors.ErrCodeArchiveUnavailable, "failed to list run objects")
		}
		out = append(out, &ObjectMetadata{
			ObjectKey:    obj.Key,
			Size:         obj.Size,
			ETag:         obj.ETag,
			LastModified: obj.LastModified,
		})
	}
	return out, nil
}

func contentType(p string) string {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".txt", ".tsv":
		return "text/plain; charset=utf-8"
	case ".csv":
		return "text/csv; charset=utf-8"
	case ".prom":
		return "text/plain; version=0.0.4"
	}
	if ct := mime.TypeByExtension(filepath.Ext(p)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

//Personal.AI order the ending
