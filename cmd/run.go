package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"nc-usersync/core/config"
	"nc-usersync/core/history"
	"nc-usersync/core/logger"
	"nc-usersync/core/nextcloud"
	"nc-usersync/core/report"
	"nc-usersync/core/roster"
	"nc-usersync/core/storage"
	"nc-usersync/core/sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// runOptions bundles the flags shared by the import and sync commands.
type runOptions struct {
	// mode names the command for the run history (import, sync).
	mode          string
	createOnly    bool
	deleteMissing bool
	dryRun        bool
	yes           bool
}

// executeRun is the shared pipeline of the import and sync commands:
// read roster, snapshot the instance, plan, confirm, apply, report.
func executeRun(ctx context.Context, opts runOptions) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	runID := uuid.NewString()
	started := time.Now()
	l.Info("Starting run",
		zap.String("run", runID),
		zap.String("mode", opts.mode),
		zap.String("roster", cfg.Roster.File),
	)

	// 1. Read and normalize the roster.
	records, err := roster.Read(cfg.Roster)
	if err != nil {
		return fmt.Errorf("failed to read roster: %w", err)
	}
	if cfg.Roster.GeneratePasswords {
		gen, err := roster.NewPasswordGenerator(cfg.Roster.PasswordLength)
		if err != nil {
			return fmt.Errorf("invalid password settings: %w", err)
		}
		if err := roster.EnsurePasswords(records, gen); err != nil {
			return err
		}
	}
	l.Info("Roster loaded", zap.Int("records", len(records)))

	// 2. Snapshot the instance. This is the only fatal error class of a run;
	// nothing has been changed yet.
	dir, err := nextcloud.NewClient(cfg.Nextcloud)
	if err != nil {
		return err
	}
	l.Info("Fetching remote state", zap.String("url", cfg.Nextcloud.URL))
	remote, err := sync.Snapshot(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to fetch remote state: %w", err)
	}
	l.Info("Remote state fetched", zap.Int("accounts", len(remote)))

	// 3. Plan.
	plan := sync.BuildPlan(records, remote, sync.Options{
		CreateOnly:      opts.createOnly,
		Delete:          opts.deleteMissing,
		Protected:       cfg.Sync.Protected,
		ProtectedGroups: cfg.Sync.ProtectedGroups,
	})
	printPlanPreview(plan)

	s := plan.Summarize()
	l.Info("Plan ready",
		zap.Int("creates", s.Creates),
		zap.Int("updates", s.Updates),
		zap.Int("deletes", s.Deletes),
		zap.Int("unchanged", s.Unchanged),
		zap.Int("skips", s.Skips),
	)

	if len(plan.Actions) == 0 {
		l.Info("Nothing to do.")
		return nil
	}

	if opts.dryRun {
		l.Info("Dry-run mode: No changes were made.")
		recordHistory(ctx, l, cfg, runID, opts, started, sync.Summary{
			Creates:   0,
			Updates:   0,
			Deletes:   0,
			Unchanged: s.Unchanged,
			Skipped:   s.Skips,
		}, nil)
		return nil
	}

	// 4. Confirm before touching the instance. Runs without mutations still
	// proceed: skips and no-ops must reach the audit log and the history.
	if s.Creates+s.Updates+s.Deletes > 0 && !confirmRun(opts.yes, s) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	// 5. Apply, streaming every outcome to the log and the audit file.
	audit, err := report.NewAuditWriter(cfg.Report.OutputDir, started)
	if err != nil {
		return err
	}

	var collected sync.Collector
	sinks := report.Multi{&collected, &report.LogSink{Log: l}, audit}

	summary, err := sync.NewApplier(dir, cfg.Nextcloud.Language).Apply(ctx, plan, sinks)
	closeErr := audit.Close()
	if err != nil {
		return fmt.Errorf("run aborted: %w", err)
	}
	if closeErr != nil {
		l.Warn("Failed to finalize audit log", zap.Error(closeErr))
	}

	// 6. Reports and archival. Failures here are warnings, the accounts are
	// already provisioned.
	artifacts := []string{audit.Path()}
	if cfg.Report.PDF {
		paths, err := report.CredentialPDFs(collected.Outcomes, cfg.Nextcloud.URL, cfg.Report, started)
		if err != nil {
			l.Warn("Failed to write credential sheets", zap.Error(err))
		} else if len(paths) > 0 {
			l.Info("Credential sheets written", zap.Strings("files", paths))
			artifacts = append(artifacts, paths...)
		}
	}
	if cfg.Storage.Enabled {
		archiveReports(ctx, l, cfg.Storage, runID, artifacts)
	}

	recordHistory(ctx, l, cfg, runID, opts, started, summary, collected.Outcomes)

	l.Info("Run finished",
		zap.String("run", runID),
		zap.Int("creates", summary.Creates),
		zap.Int("updates", summary.Updates),
		zap.Int("deletes", summary.Deletes),
		zap.Int("unchanged", summary.Unchanged),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failures", summary.Failures),
	)

	if summary.Failures > 0 {
		return fmt.Errorf("%d of %d records failed, see the audit log", summary.Failures, len(plan.Actions))
	}
	return nil
}

// printPlanPreview renders the planned actions as a table on stdout so the
// operator sees what a confirmation would do.
func printPlanPreview(plan sync.Plan) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACTION\tUSERNAME\tDETAILS")
	for _, a := range plan.Actions {
		detail := a.Reason
		if a.Op == sync.OpUpdate {
			detail = strings.Join(a.Changes, ", ")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", strings.ToUpper(string(a.Op)), a.Username, detail)
	}
	_ = w.Flush()
	fmt.Println()
}

// confirmRun prompts the user for confirmation or uses the --yes flag.
func confirmRun(yes bool, s sync.PlanSummary) bool {
	if yes {
		fmt.Println("✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("About to create %d, update %d and delete %d accounts.\n", s.Creates, s.Updates, s.Deletes)
	fmt.Print("Type 'yes' to continue: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}

func archiveReports(ctx context.Context, l *zap.Logger, cfg storage.Config, runID string, paths []string) {
	client, err := storage.NewClient(cfg)
	if err != nil {
		l.Warn("Failed to create storage client", zap.Error(err))
		return
	}
	archiver := report.NewArchiver(client, cfg.Bucket, l)
	if err := archiver.Upload(ctx, runID, paths); err != nil {
		l.Warn("Failed to archive reports", zap.Error(err))
	}
}

// recordHistory persists the run. History is optional, a failure only warns.
func recordHistory(ctx context.Context, l *zap.Logger, cfg *config.Config, runID string, opts runOptions, started time.Time, summary sync.Summary, outcomes []sync.Outcome) {
	if !cfg.History.Enabled {
		return
	}
	store, err := history.Open(cfg.History)
	if err != nil {
		l.Warn("Optional history database connection failed", zap.Error(err))
		return
	}
	run := history.FromSummary(runID, opts.mode, cfg.Roster.File, opts.dryRun, started, time.Now(), summary, outcomes)
	if err := store.RecordRun(ctx, run); err != nil {
		l.Warn("Failed to record run history", zap.Error(err))
	}
}
