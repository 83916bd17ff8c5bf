package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"nc-usersync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archiver uploads the files a run produced to object storage so credential
// sheets and audit logs survive the machine the run happened on.
type Archiver struct {
	client storage.Client
	bucket string
	log    *zap.Logger
}

func NewArchiver(client storage.Client, bucket string, log *zap.Logger) *Archiver {
	return &Archiver{client: client, bucket: bucket, log: log}
}

// Upload stores the given local files under runs/<runID>/ in the bucket,
// creating the bucket first if it does not exist yet.
func (a *Archiver) Upload(ctx context.Context, runID string, paths []string) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
		}
	}

	for _, path := range paths {
		if err := a.uploadFile(ctx, runID, path); err != nil {
			return err
		}
	}
	return nil
}

func (a *Archiver) uploadFile(ctx context.Context, runID, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	objectName := fmt.Sprintf("runs/%s/%s", runID, filepath.Base(path))
	_, err = a.client.PutObject(ctx, a.bucket, objectName, file, info.Size(), minio.PutObjectOptions{
		ContentType: contentType(path),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	a.log.Info("archived report", zap.String("object", objectName), zap.Int64("size", info.Size()))
	return nil
}

func contentType(path string) string {
	switch filepath.Ext(path) {
	case ".pdf":
		return "application/pdf"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
