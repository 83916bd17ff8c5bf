package report_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"nc-usersync/core/report"
	"nc-usersync/core/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialPDFs_Combined(t *testing.T) {
	dir := t.TempDir()
	cfg := report.Config{OutputDir: dir, PDF: true, QRCodes: true}
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	outcomes := []sync.Outcome{
		{Username: "alice", DisplayName: "Alice", Op: sync.OpCreate, Success: true, Password: "pw1"},
		{Username: "bob", DisplayName: "Bob", Op: sync.OpCreate, Success: true, Password: "pw2"},
		// Neither failures nor updates get a credential sheet.
		{Username: "carol", Op: sync.OpCreate, Success: false},
		{Username: "dave", Op: sync.OpUpdate, Success: true},
	}

	paths, err := report.CredentialPDFs(outcomes, "https://cloud.example.org", cfg, now)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "credentials-2026-03-14-092653.pdf"), paths[0])

	info, err := os.Stat(paths[0])
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestCredentialPDFs_PerUser(t *testing.T) {
	dir := t.TempDir()
	cfg := report.Config{OutputDir: dir, PDF: true, PDFPerUser: true}
	now := time.Now()

	outcomes := []sync.Outcome{
		{Username: "alice", Op: sync.OpCreate, Success: true, Password: "pw1"},
		{Username: "bob", Op: sync.OpCreate, Success: true, Password: "pw2"},
	}

	paths, err := report.CredentialPDFs(outcomes, "https://cloud.example.org", cfg, now)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "credentials-alice.pdf"), paths[0])
	assert.Equal(t, filepath.Join(dir, "credentials-bob.pdf"), paths[1])

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestCredentialPDFs_NothingCreated(t *testing.T) {
	cfg := report.Config{OutputDir: t.TempDir(), PDF: true}

	paths, err := report.CredentialPDFs([]sync.Outcome{
		{Username: "dave", Op: sync.OpUpdate, Success: true},
	}, "https://cloud.example.org", cfg, time.Now())
	require.NoError(t, err)
	assert.Empty(t, paths)
}
