package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ocsXML(statuscode int, data string) string {
	return fmt.Sprintf(`<?xml version="1.0"?>
<ocs><meta><status>ok</status><statuscode>%d</statuscode><message>OK</message></meta><data>%s</data></ocs>`,
		statuscode, data)
}

// setupRun points the configuration at a stub provisioning API and a
// temporary roster, and returns the report output directory.
func setupRun(t *testing.T, handler http.Handler, roster string) string {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	rosterPath := filepath.Join(dir, "users.csv")
	require.NoError(t, os.WriteFile(rosterPath, []byte(roster), 0o644))
	outputDir := filepath.Join(dir, "output")

	t.Setenv("NEXTCLOUD_URL", srv.URL)
	t.Setenv("NEXTCLOUD_ADMIN_USER", "admin")
	t.Setenv("NEXTCLOUD_ADMIN_PASS", "secret")
	t.Setenv("ROSTER_FILE", rosterPath)
	t.Setenv("REPORT_OUTPUT_DIR", outputDir)
	t.Setenv("HISTORY_ENABLED", "false")

	return outputDir
}

func auditContent(t *testing.T, outputDir string) string {
	t.Helper()
	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	raw, err := os.ReadFile(filepath.Join(outputDir, entries[0].Name()))
	require.NoError(t, err)
	return string(raw)
}

func TestExecuteRun_MalformedOnlyRosterStillReports(t *testing.T) {
	outputDir := setupRun(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ocs/v1.php/cloud/users", r.URL.Path)
		fmt.Fprint(w, ocsXML(100, `<users></users>`))
	}), "username;email\n;noname@example.org\n")

	err := executeRun(context.Background(), runOptions{mode: "sync", yes: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed")

	// The skip still produced an audit row.
	content := auditContent(t, outputDir)
	assert.Contains(t, content, "skip")
	assert.Contains(t, content, "missing username")
}

func TestExecuteRun_UnchangedRosterWritesAudit(t *testing.T) {
	outputDir := setupRun(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ocs/v1.php/cloud/users":
			fmt.Fprint(w, ocsXML(100, `<users><element>bob</element></users>`))
		case "/ocs/v1.php/cloud/users/bob":
			fmt.Fprint(w, ocsXML(100, `<id>bob</id><enabled>1</enabled><displayname>Bob</displayname><email></email><quota><quota>1GB</quota></quota>`))
		case "/ocs/v1.php/cloud/users/bob/groups":
			fmt.Fprint(w, ocsXML(100, `<groups></groups>`))
		case "/ocs/v1.php/cloud/users/bob/subadmins":
			fmt.Fprint(w, ocsXML(100, ``))
		default:
			t.Fatalf("unexpected mutation call %s %s", r.Method, r.URL.Path)
		}
	}), "username;displayname\nbob;Bob\n")

	require.NoError(t, executeRun(context.Background(), runOptions{mode: "sync", yes: true}))

	// The no-op still produced an audit row.
	content := auditContent(t, outputDir)
	assert.Contains(t, content, "bob")
	assert.Contains(t, content, "none")
	assert.Contains(t, content, "up to date")
}
