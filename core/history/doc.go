// Package history persists provisioning runs and their per-account outcomes.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) supporting
// SQLite for local single-machine use and MySQL for shared deployments.
//
// # Records
//
// A Run holds the aggregate counts of one invocation (creates, updates,
// deletes, unchanged, skipped, failures). Each Run owns Outcome rows with the
// per-account result. Passwords are stripped before anything reaches the
// database.
//
// # Usage
//
//	store, err := history.Open(cfg.History)
//	if err != nil {
//	    log.Fatal("History database connection failed", err)
//	}
//
//	err = store.RecordRun(ctx, run)
package history
