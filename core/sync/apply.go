package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nc-usersync/core/nextcloud"
)

// Snapshot fetches the full remote state: usernames plus per-user details.
// A failing listing means the directory is unreachable and the run must not
// proceed; this is the only fatal error class of a run.
func Snapshot(ctx context.Context, dir nextcloud.Directory) (map[string]nextcloud.User, error) {
	usernames, err := dir.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	remote := make(map[string]nextcloud.User, len(usernames))
	for _, username := range usernames {
		user, err := dir.GetUser(ctx, username)
		if err != nil {
			// Still before any mutation, so aborting is safe.
			return nil, fmt.Errorf("fetch user %s: %w", username, err)
		}
		remote[username] = user
	}
	return remote, nil
}

// Applier executes plans against a directory.
type Applier struct {
	dir nextcloud.Directory
	// language is assigned to newly created accounts.
	language string
}

// NewApplier creates an Applier. language may be empty.
func NewApplier(dir nextcloud.Directory, language string) *Applier {
	return &Applier{dir: dir, language: language}
}

// Apply executes a plan sequentially, streaming one Outcome per action to
// the sink. A failing call records a failure outcome and processing
// continues with the next action; Apply itself only returns an error for
// context cancellation between actions.
func (a *Applier) Apply(ctx context.Context, plan Plan, sink Sink) (Summary, error) {
	var summary Summary
	groups := newGroupCache(a.dir)

	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		var outcome Outcome
		switch action.Op {
		case OpSkip:
			outcome = Outcome{
				Username:    action.Username,
				DisplayName: displayName(action),
				Op:          OpSkip,
				Success:     !action.Malformed,
				Detail:      action.Reason,
			}
		case OpNone:
			outcome = Outcome{
				Username:    action.Username,
				DisplayName: displayName(action),
				Op:          OpNone,
				Success:     true,
				Detail:      action.Reason,
			}
		case OpCreate:
			outcome = a.applyCreate(ctx, groups, action)
		case OpUpdate:
			outcome = a.applyUpdate(ctx, groups, action)
		case OpDelete:
			outcome = a.applyDelete(ctx, action)
		}

		summary.count(outcome)
		if sink != nil {
			sink.Record(outcome)
		}
	}

	return summary, nil
}

func (a *Applier) applyCreate(ctx context.Context, groups *groupCache, action Action) Outcome {
	rec := action.Record
	outcome := Outcome{
		Username:    rec.Username,
		DisplayName: rec.DisplayName,
		Op:          OpCreate,
	}

	for _, group := range append(append([]string{}, rec.Groups...), rec.Subadmin...) {
		if err := groups.ensure(ctx, group); err != nil {
			outcome.Detail = fmt.Sprintf("create group %s: %v", group, err)
			return outcome
		}
	}

	err := a.dir.CreateUser(ctx, nextcloud.CreateRequest{
		Username:    rec.Username,
		Password:    rec.Password,
		DisplayName: rec.DisplayName,
		Email:       rec.Email,
		Quota:       rec.Quota,
		Language:    a.language,
		Groups:      rec.Groups,
		Subadmin:    rec.Subadmin,
	})
	if err != nil {
		outcome.Detail = err.Error()
		return outcome
	}

	// A roster row may provision an account as disabled from the start.
	if !rec.Enabled {
		if err := a.dir.DisableUser(ctx, rec.Username); err != nil {
			outcome.Detail = fmt.Sprintf("created, but disable failed: %v", err)
			return outcome
		}
	}

	outcome.Success = true
	outcome.Password = rec.Password
	return outcome
}

func (a *Applier) applyUpdate(ctx context.Context, groups *groupCache, action Action) Outcome {
	rec := action.Record
	remote := action.Remote
	outcome := Outcome{
		Username:    rec.Username,
		DisplayName: rec.DisplayName,
		Op:          OpUpdate,
		Changes:     action.Changes,
	}

	for _, field := range action.Changes {
		var err error
		switch field {
		case FieldDisplayName:
			err = a.dir.EditUser(ctx, rec.Username, nextcloud.KeyDisplayName, rec.DisplayName)
		case FieldEmail:
			err = a.dir.EditUser(ctx, rec.Username, nextcloud.KeyEmail, rec.Email)
		case FieldQuota:
			err = a.dir.EditUser(ctx, rec.Username, nextcloud.KeyQuota, rec.Quota)
		case FieldEnabled:
			if rec.Enabled {
				err = a.dir.EnableUser(ctx, rec.Username)
			} else {
				err = a.dir.DisableUser(ctx, rec.Username)
			}
		case FieldGroups:
			err = a.syncMembership(ctx, groups, rec.Username, remote.Groups, rec.Groups,
				a.dir.AddUserToGroup, a.dir.RemoveUserFromGroup)
		case FieldSubadmin:
			err = a.syncMembership(ctx, groups, rec.Username, remote.Subadmin, rec.Subadmin,
				a.dir.PromoteSubadmin, a.dir.DemoteSubadmin)
		}
		if err != nil {
			// Best effort, no rollback: fields already updated stay updated.
			outcome.Detail = fmt.Sprintf("update %s: %v", field, err)
			return outcome
		}
	}

	outcome.Success = true
	outcome.Detail = "updated " + strings.Join(action.Changes, ", ")
	return outcome
}

func (a *Applier) applyDelete(ctx context.Context, action Action) Outcome {
	outcome := Outcome{
		Username:    action.Username,
		DisplayName: displayName(action),
		Op:          OpDelete,
		Detail:      action.Reason,
	}
	if err := a.dir.DeleteUser(ctx, action.Username); err != nil {
		outcome.Detail = err.Error()
		return outcome
	}
	outcome.Success = true
	return outcome
}

// syncMembership reconciles one membership set by difference: missing groups
// are added (created first if necessary), stale ones removed.
func (a *Applier) syncMembership(
	ctx context.Context,
	groups *groupCache,
	username string,
	current, want []string,
	add, remove func(ctx context.Context, username, group string) error,
) error {
	currentSet := toSet(current)
	wantSet := toSet(want)

	for group := range wantSet {
		if _, ok := currentSet[group]; ok {
			continue
		}
		if err := groups.ensure(ctx, group); err != nil {
			return fmt.Errorf("create group %s: %w", group, err)
		}
		if err := add(ctx, username, group); err != nil {
			return fmt.Errorf("add to %s: %w", group, err)
		}
	}
	for group := range currentSet {
		if _, ok := wantSet[group]; ok {
			continue
		}
		if err := remove(ctx, username, group); err != nil {
			return fmt.Errorf("remove from %s: %w", group, err)
		}
	}
	return nil
}

// groupCache lazily loads the instance's group list once per run and tracks
// groups created during the run.
type groupCache struct {
	dir    nextcloud.Directory
	known  map[string]struct{}
	loaded bool
}

func newGroupCache(dir nextcloud.Directory) *groupCache {
	return &groupCache{dir: dir, known: make(map[string]struct{})}
}

func (g *groupCache) ensure(ctx context.Context, group string) error {
	if !g.loaded {
		// A failing listing is tolerable: creates of existing groups are
		// answered with "already exists" and treated below as present.
		if existing, err := g.dir.ListGroups(ctx); err == nil {
			for _, name := range existing {
				g.known[name] = struct{}{}
			}
		}
		g.loaded = true
	}

	if _, ok := g.known[group]; ok {
		return nil
	}

	if err := g.dir.CreateGroup(ctx, group); err != nil {
		var apiErr *nextcloud.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != 102 {
			return err
		}
		// 102: group already exists.
	}
	g.known[group] = struct{}{}
	return nil
}

func displayName(action Action) string {
	if action.Record != nil {
		return action.Record.DisplayName
	}
	if action.Remote != nil {
		return action.Remote.DisplayName
	}
	return ""
}
