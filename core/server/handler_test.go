package server_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"nc-usersync/core/history"
	"nc-usersync/core/server"
	"nc-usersync/core/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testApp(t *testing.T, apiKey string) (*server.Config, *history.Store) {
	t.Helper()
	store, err := history.Open(history.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	return &server.Config{Port: "8080", ApiKey: apiKey}, store
}

func seedRun(t *testing.T, store *history.Store, id string, started time.Time) {
	t.Helper()
	run := history.FromSummary(id, "sync", "users.csv", false, started, started.Add(time.Minute),
		sync.Summary{Creates: 2, Failures: 1},
		[]sync.Outcome{
			{Username: "alice", Op: sync.OpCreate, Success: true},
			{Username: "bob", Op: sync.OpCreate, Success: true},
			{Username: "carol", Op: sync.OpUpdate, Success: false, Detail: "rejected"},
		})
	require.NoError(t, store.RecordRun(context.Background(), run))
}

func TestHandleHealth(t *testing.T) {
	cfg, store := testApp(t, "")
	app := server.New(*cfg, store, zap.NewNop())

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestHandleListRuns(t *testing.T) {
	cfg, store := testApp(t, "")
	seedRun(t, store, "run-old", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	seedRun(t, store, "run-new", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	app := server.New(*cfg, store, zap.NewNop())

	resp, err := app.Test(httptest.NewRequest("GET", "/runs", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var runs []history.Run
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&runs))
	require.Len(t, runs, 2)
	assert.Equal(t, "run-new", runs[0].ID)
	assert.Empty(t, runs[0].Outcomes)
}

func TestHandleGetRun(t *testing.T) {
	cfg, store := testApp(t, "")
	seedRun(t, store, "run-1", time.Now())
	app := server.New(*cfg, store, zap.NewNop())

	resp, err := app.Test(httptest.NewRequest("GET", "/runs/run-1", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var run history.Run
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
	assert.Equal(t, 2, run.Creates)
	require.Len(t, run.Outcomes, 3)
	assert.Equal(t, "alice", run.Outcomes[0].Username)

	resp, err = app.Test(httptest.NewRequest("GET", "/runs/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestApiKeyProtection(t *testing.T) {
	cfg, store := testApp(t, "sekrit")
	app := server.New(*cfg, store, zap.NewNop())

	// Health stays open.
	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// Runs require the key.
	resp, err = app.Test(httptest.NewRequest("GET", "/runs", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req := httptest.NewRequest("GET", "/runs", nil)
	req.Header.Set("X-API-Key", "sekrit")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
