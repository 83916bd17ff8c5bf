package sync

import (
	"sort"
	"strings"

	"nc-usersync/core/nextcloud"
	"nc-usersync/core/roster"
)

// Fields compared between a desired record and its remote counterpart.
// The set is explicit: anything not listed here never triggers an update.
const (
	FieldDisplayName = "displayname"
	FieldEmail       = "email"
	FieldQuota       = "quota"
	FieldEnabled     = "enabled"
	FieldGroups      = "groups"
	FieldSubadmin    = "subadmin"
)

// Options controls how a plan is built.
type Options struct {
	// CreateOnly limits the run to creating missing accounts; existing
	// accounts are left untouched (import mode).
	CreateOnly bool
	// Delete enables delete actions for remote accounts absent from the
	// roster. Without it remote-only accounts produce no action at all.
	Delete bool
	// Protected usernames are never deleted. "admin" is always protected.
	Protected []string
	// ProtectedGroups shields every member of the listed groups from
	// deletion.
	ProtectedGroups []string
}

// Action is one planned step. Exactly one of the classification rules in
// BuildPlan produces it.
type Action struct {
	Op       Op
	Username string
	// Record is the desired state; nil for deletes.
	Record *roster.Record
	// Remote is the current directory state; nil for creates.
	Remote *nextcloud.User
	// Changes lists the differing fields for updates.
	Changes []string
	// Reason documents skips and no-ops.
	Reason string
	// Malformed marks a skip caused by invalid input; such skips are
	// failure outcomes.
	Malformed bool
}

// Plan is the ordered list of actions for one run: desired records first, in
// input order, then delete candidates sorted by username.
type Plan struct {
	Actions []Action
}

// PlanSummary counts the planned actions per kind, for previewing.
type PlanSummary struct {
	Creates   int
	Updates   int
	Unchanged int
	Deletes   int
	Skips     int
}

func (p Plan) Summarize() PlanSummary {
	var s PlanSummary
	for _, a := range p.Actions {
		switch a.Op {
		case OpCreate:
			s.Creates++
		case OpUpdate:
			s.Updates++
		case OpNone:
			s.Unchanged++
		case OpDelete:
			s.Deletes++
		case OpSkip:
			s.Skips++
		}
	}
	return s
}

// BuildPlan classifies every desired record against the remote snapshot.
// It is pure: no I/O, no mutation of its inputs.
//
// Classification per desired record:
//   - no username            -> skip (malformed)
//   - absent remotely        -> create
//   - present, fields differ -> update (or no-op in create-only mode)
//   - present, fields match  -> no-op
//
// With opts.Delete set, every remote username absent from the desired set
// becomes a delete, unless protected.
func BuildPlan(desired []roster.Record, remote map[string]nextcloud.User, opts Options) Plan {
	var plan Plan
	desiredNames := make(map[string]struct{}, len(desired))

	for i := range desired {
		rec := desired[i]
		if !rec.Valid() {
			plan.Actions = append(plan.Actions, Action{
				Op:        OpSkip,
				Username:  rec.Username,
				Record:    &rec,
				Reason:    "missing username",
				Malformed: true,
			})
			continue
		}
		desiredNames[rec.Username] = struct{}{}

		current, exists := remote[rec.Username]
		if !exists {
			plan.Actions = append(plan.Actions, Action{
				Op:       OpCreate,
				Username: rec.Username,
				Record:   &rec,
			})
			continue
		}

		if opts.CreateOnly {
			plan.Actions = append(plan.Actions, Action{
				Op:       OpNone,
				Username: rec.Username,
				Record:   &rec,
				Remote:   &current,
				Reason:   "account already exists",
			})
			continue
		}

		changes := DiffFields(rec, current)
		if len(changes) == 0 {
			plan.Actions = append(plan.Actions, Action{
				Op:       OpNone,
				Username: rec.Username,
				Record:   &rec,
				Remote:   &current,
				Reason:   "up to date",
			})
			continue
		}

		plan.Actions = append(plan.Actions, Action{
			Op:       OpUpdate,
			Username: rec.Username,
			Record:   &rec,
			Remote:   &current,
			Changes:  changes,
		})
	}

	if opts.Delete {
		plan.Actions = append(plan.Actions, deleteActions(desiredNames, remote, opts)...)
	}

	return plan
}

func deleteActions(desired map[string]struct{}, remote map[string]nextcloud.User, opts Options) []Action {
	protected := make(map[string]struct{}, len(opts.Protected)+1)
	protected["admin"] = struct{}{}
	for _, name := range opts.Protected {
		protected[name] = struct{}{}
	}
	protectedGroups := make(map[string]struct{}, len(opts.ProtectedGroups))
	for _, group := range opts.ProtectedGroups {
		protectedGroups[group] = struct{}{}
	}

	var actions []Action
	for username := range remote {
		if _, wanted := desired[username]; wanted {
			continue
		}
		current := remote[username]

		if _, shielded := protected[username]; shielded {
			actions = append(actions, Action{
				Op:       OpSkip,
				Username: username,
				Remote:   &current,
				Reason:   "protected account",
			})
			continue
		}
		if group, shielded := memberOfAny(current.Groups, protectedGroups); shielded {
			actions = append(actions, Action{
				Op:       OpSkip,
				Username: username,
				Remote:   &current,
				Reason:   "member of protected group " + group,
			})
			continue
		}

		actions = append(actions, Action{
			Op:       OpDelete,
			Username: username,
			Remote:   &current,
			Reason:   "absent from roster",
		})
	}

	sort.Slice(actions, func(i, j int) bool { return actions[i].Username < actions[j].Username })
	return actions
}

// DiffFields returns the fields of the desired record that differ from the
// remote state. An empty desired quota means "no opinion" and never counts
// as a difference.
func DiffFields(rec roster.Record, remote nextcloud.User) []string {
	var changes []string

	if rec.DisplayName != strings.TrimSpace(remote.DisplayName) {
		changes = append(changes, FieldDisplayName)
	}
	if !strings.EqualFold(rec.Email, strings.TrimSpace(remote.Email)) {
		changes = append(changes, FieldEmail)
	}
	if rec.Quota != "" && rec.Quota != remote.Quota {
		changes = append(changes, FieldQuota)
	}
	if rec.Enabled != remote.Enabled {
		changes = append(changes, FieldEnabled)
	}
	if !sameSet(rec.Groups, remote.Groups) {
		changes = append(changes, FieldGroups)
	}
	if !sameSet(rec.Subadmin, remote.Subadmin) {
		changes = append(changes, FieldSubadmin)
	}

	return changes
}

func sameSet(a, b []string) bool {
	if len(toSet(a)) != len(toSet(b)) {
		return false
	}
	bs := toSet(b)
	for _, v := range a {
		if _, ok := bs[strings.TrimSpace(v)]; !ok {
			return false
		}
	}
	return true
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func memberOfAny(groups []string, protected map[string]struct{}) (string, bool) {
	for _, g := range groups {
		if _, ok := protected[g]; ok {
			return g, true
		}
	}
	return "", false
}
