// Package sync is the reconciliation engine: it maps a desired account
// roster onto create/update/delete operations against a remote directory.
//
// The engine is split into a pure planning step and an applying step:
//
//	remote, err := sync.Snapshot(ctx, dir)          // one listing, fatal on failure
//	plan := sync.BuildPlan(records, remote, opts)   // pure classification
//	summary, err := sync.NewApplier(dir, lang).Apply(ctx, plan, sink)
//
// Every desired record is classified into exactly one action and yields
// exactly one Outcome per run. Per-record failures are data (a failure
// Outcome), never errors: one rejected call does not stop the run. All user
// interaction and I/O beyond the directory calls lives in the callers.
package sync
