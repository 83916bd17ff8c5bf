package report_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"nc-usersync/core/report"
	"nc-usersync/core/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditWriter(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	audit, err := report.NewAuditWriter(dir, now)
	require.NoError(t, err)

	audit.Record(sync.Outcome{
		Username: "alice",
		Op:       sync.OpCreate,
		Success:  true,
		Password: "secret-password",
	})
	audit.Record(sync.Outcome{
		Username: "bob",
		Op:       sync.OpUpdate,
		Success:  false,
		Changes:  []string{"email"},
		Detail:   "edit rejected",
	})
	require.NoError(t, audit.Close())

	assert.Equal(t, filepath.Join(dir, "audit-2026-03-14-092653.csv"), audit.Path())

	raw, err := os.ReadFile(audit.Path())
	require.NoError(t, err)
	// The password never reaches the audit log.
	assert.NotContains(t, string(raw), "secret-password")

	file, err := os.Open(audit.Path())
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "username", rows[0][1])
	assert.Equal(t, "alice", rows[1][1])
	assert.Equal(t, "create", rows[1][2])
	assert.Equal(t, "true", rows[1][3])
	assert.Equal(t, "bob", rows[2][1])
	assert.Equal(t, "edit rejected", rows[2][5])
}

func TestMultiFansOut(t *testing.T) {
	var a, b sync.Collector
	multi := report.Multi{&a, &b}

	multi.Record(sync.Outcome{Username: "alice", Op: sync.OpCreate, Success: true})

	require.Len(t, a.Outcomes, 1)
	require.Len(t, b.Outcomes, 1)
	assert.Equal(t, "alice", a.Outcomes[0].Username)
}
