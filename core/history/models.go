package history

import "time"

// Run is one recorded provisioning run.
type Run struct {
	// ID is the run identifier (UUID), also used as the archive prefix.
	ID         string    `gorm:"primaryKey" json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	// Mode is the command that produced the run (import, sync).
	Mode       string `json:"mode"`
	RosterFile string `json:"roster_file"`
	DryRun     bool   `json:"dry_run"`

	Creates   int `json:"creates"`
	Updates   int `json:"updates"`
	Deletes   int `json:"deletes"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
	Failures  int `json:"failures"`

	Outcomes []Outcome `gorm:"foreignKey:RunID" json:"outcomes,omitempty"`
}

// Outcome is the per-account result row of a run. It never contains
// passwords.
type Outcome struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	RunID    string `gorm:"index" json:"-"`
	Username string `json:"username"`
	// Op is the operation applied (create, update, delete, none, skip).
	Op      string `json:"op"`
	Success bool   `json:"success"`
	// Changes lists updated fields, pipe separated.
	Changes string `json:"changes,omitempty"`
	Detail  string `json:"detail,omitempty"`
}
