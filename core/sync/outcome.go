package sync

// Op is the kind of operation applied (or not applied) for one account.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	// OpNone marks a desired record whose remote state already matches.
	OpNone Op = "none"
	// OpSkip marks a record that was never sent to the directory:
	// malformed input or a protected delete candidate.
	OpSkip Op = "skip"
)

// Outcome is the final, immutable result for one account in one run.
// Every desired record produces exactly one Outcome; every delete candidate
// produces one as well.
type Outcome struct {
	Username    string
	DisplayName string
	Op          Op
	Success     bool
	// Detail carries the failure reason, or a short note for skips and no-ops.
	Detail string
	// Changes lists the fields an update touched (or would touch).
	Changes []string
	// Password is only set for successfully created accounts, so the
	// credential report can include it. Never persisted to history.
	Password string
}

// Sink receives outcomes in run order. Implementations live in core/report.
type Sink interface {
	Record(Outcome)
}

// Collector is a Sink that accumulates outcomes in memory.
type Collector struct {
	Outcomes []Outcome
}

func (c *Collector) Record(o Outcome) {
	c.Outcomes = append(c.Outcomes, o)
}

// Summary aggregates the outcomes of a run.
type Summary struct {
	Creates   int
	Updates   int
	Deletes   int
	Unchanged int
	Skipped   int
	Failures  int
}

func (s *Summary) count(o Outcome) {
	if !o.Success {
		s.Failures++
	}
	switch o.Op {
	case OpCreate:
		if o.Success {
			s.Creates++
		}
	case OpUpdate:
		if o.Success {
			s.Updates++
		}
	case OpDelete:
		if o.Success {
			s.Deletes++
		}
	case OpNone:
		s.Unchanged++
	case OpSkip:
		s.Skipped++
	}
}
