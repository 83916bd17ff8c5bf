package history

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"nc-usersync/core/sync"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store persists runs and their per-account outcomes.
type Store struct {
	db *gorm.DB
}

// Open connects to the configured database and migrates the history schema.
func Open(cfg Config) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Name)
	case "mysql":
		dialector = mysql.Open(mysqlDSN(cfg))
	default:
		return nil, fmt.Errorf("unsupported history driver: %s", cfg.Driver)
	}

	// Suppress GORM logging, the main logger reports what matters.
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if cfg.Driver == "mysql" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)

		timeout := cfg.TimeoutSeconds
		if timeout <= 0 {
			timeout = 30
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("failed to ping history database: %w", err)
		}
	}

	return NewStore(db)
}

// NewStore wraps an existing gorm connection and migrates the history schema.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Run{}, &Outcome{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func mysqlDSN(cfg Config) string {
	userInfo := url.UserPassword(cfg.User, cfg.Password).String()
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		userInfo, cfg.Host, cfg.Port, cfg.Name, timeout, timeout, timeout)
}

// RecordRun stores a finished run together with its outcomes.
func (s *Store) RecordRun(ctx context.Context, run *Run) error {
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first, without their
// per-account outcomes.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	var runs []Run
	err := s.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run with its outcomes, or gorm.ErrRecordNotFound.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.db.WithContext(ctx).
		Preload("Outcomes").
		First(&run, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// FromSummary converts a run summary and its outcomes into history rows.
// Passwords are dropped here, they must never reach the database.
func FromSummary(id, mode, rosterFile string, dryRun bool, started, finished time.Time, summary sync.Summary, outcomes []sync.Outcome) *Run {
	run := &Run{
		ID:         id,
		StartedAt:  started,
		FinishedAt: finished,
		Mode:       mode,
		RosterFile: rosterFile,
		DryRun:     dryRun,
		Creates:    summary.Creates,
		Updates:    summary.Updates,
		Deletes:    summary.Deletes,
		Unchanged:  summary.Unchanged,
		Skipped:    summary.Skipped,
		Failures:   summary.Failures,
	}
	for _, o := range outcomes {
		run.Outcomes = append(run.Outcomes, Outcome{
			Username: o.Username,
			Op:       string(o.Op),
			Success:  o.Success,
			Changes:  strings.Join(o.Changes, "|"),
			Detail:   o.Detail,
		})
	}
	return run
}
