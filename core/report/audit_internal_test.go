package report

import (
	"strings"
	"testing"
	"time"

	"nc-usersync/core/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditWriter_WriteErrorNamesRow(t *testing.T) {
	audit, err := NewAuditWriter(t.TempDir(), time.Now())
	require.NoError(t, err)

	// Close the file underneath the writer, then force a flush by writing a
	// row larger than the csv writer's buffer.
	require.NoError(t, audit.file.Close())
	audit.Record(sync.Outcome{
		Username: "alice",
		Op:       sync.OpCreate,
		Detail:   strings.Repeat("x", 8192),
	})

	err = audit.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alice")
}
