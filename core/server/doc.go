// Package server exposes the recorded run history over HTTP.
//
// # Endpoints
//
//   - GET /health          liveness probe, unauthenticated
//   - GET /runs            most recent runs, newest first
//   - GET /runs/:id        one run with its per-account outcomes
//
// Everything below /runs is protected by the API key middleware when a key is
// configured.
package server
