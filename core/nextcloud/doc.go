// Package nextcloud implements a client for the Nextcloud OCS provisioning
// API (users and groups, v1).
//
// The sync engine consumes the Directory interface; Client is the HTTP
// implementation. Responses are XML envelopes whose meta statuscode decides
// success (100) or rejection (anything else, surfaced as *APIError).
//
// Every call is bounded by the configured timeout and never retried: a
// timeout is a terminal per-call failure.
package nextcloud
