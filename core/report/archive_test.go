package report_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"nc-usersync/core/report"
	"nc-usersync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestArchiver_Upload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit-test.csv")
	require.NoError(t, os.WriteFile(path, []byte("timestamp,username\n"), 0o644))

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "reports").Return(true, nil)
	client.On("PutObject", mock.Anything, "reports", "runs/run-1/audit-test.csv",
		mock.Anything, int64(19), mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
			return opts.ContentType == "text/csv"
		})).Return(minio.UploadInfo{}, nil)

	archiver := report.NewArchiver(client, "reports", zap.NewNop())
	err := archiver.Upload(context.Background(), "run-1", []string{path})
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestArchiver_CreatesMissingBucket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials-alice.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "reports").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "reports", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "reports", "runs/run-2/credentials-alice.pdf",
		mock.Anything, mock.Anything, mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
			return opts.ContentType == "application/pdf"
		})).Return(minio.UploadInfo{}, nil)

	archiver := report.NewArchiver(client, "reports", zap.NewNop())
	require.NoError(t, archiver.Upload(context.Background(), "run-2", []string{path}))
	client.AssertExpectations(t)
}
