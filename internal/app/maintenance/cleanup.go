package maintenance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/charlesng35/collabhub/internal/cache"
	"github.com/charlesng35/collabhub/internal/models"
	"github.com/charlesng35/collabhub/internal/services"
	"github.com/charlesng35/collabhub/pkg/logger"
	"github.com/charlesng35/collabhub/pkg/metrics"
)

const (
	defaultAuditRetentionDays = 90
	defaultReconcileSpec      = "@hourly"
	defaultCacheSpec          = "*/15 * * * *"
	defaultAuditSpec          = "@daily"

	jobReconcile = "membership_reconcile"
	jobCache     = "cache_purge"
	jobAudit     = "audit_cleanup"
)

// Cleaner coordinates background maintenance tasks: repairing membership
// backlinks, purging expired cache entries and pruning stale audit logs.
type Cleaner struct {
	db        *gorm.DB
	purger    cache.Purger
	audit     *services.AuditService
	cron      *cron.Cron
	now       func() time.Time
	log       *zap.Logger
	retention int

	reconcileSchedule string
	cacheSchedule     string
	auditSchedule     string
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithNow overrides the clock used for cache expiry comparisons.
func WithNow(now func() time.Time) Option {
	return func(cleaner *Cleaner) {
		if now != nil {
			cleaner.now = now
		}
	}
}

// WithCachePurger enables purging of expired cache rows. Only the database
// cache needs it; Redis expires keys itself.
func WithCachePurger(purger cache.Purger) Option {
	return func(cleaner *Cleaner) {
		cleaner.purger = purger
	}
}

// WithAuditRetentionDays adjusts how long audit logs are retained before cleanup.
func WithAuditRetentionDays(days int) Option {
	return func(cleaner *Cleaner) {
		if days > 0 {
			cleaner.retention = days
		}
	}
}

// WithReconcileSchedule overrides the cron specification for backlink repair.
func WithReconcileSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.reconcileSchedule = spec
		}
	}
}

// WithCacheSchedule overrides the cron specification for cache purging.
func WithCacheSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.cacheSchedule = spec
		}
	}
}

// WithAuditSchedule overrides the cron specification for audit retention enforcement.
func WithAuditSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.auditSchedule = spec
		}
	}
}

// NewCleaner constructs a Cleaner with sensible defaults. Any nil dependency results in
// the corresponding job being skipped.
func NewCleaner(db *gorm.DB, audit *services.AuditService, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		db:                db,
		audit:             audit,
		now:               time.Now,
		retention:         defaultAuditRetentionDays,
		reconcileSchedule: defaultReconcileSpec,
		cacheSchedule:     defaultCacheSpec,
		auditSchedule:     defaultAuditSpec,
		log:               logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

type job struct {
	name     string
	schedule string
	run      func(ctx context.Context) (int64, error)
}

func (c *Cleaner) jobs() []job {
	var jobs []job
	if c.db != nil {
		jobs = append(jobs, job{name: jobReconcile, schedule: c.reconcileSchedule, run: func(ctx context.Context) (int64, error) {
			stats, err := ReconcileMemberships(ctx, c.db)
			return stats.Linked + stats.Unlinked, err
		}})
	}
	if c.purger != nil {
		jobs = append(jobs, job{name: jobCache, schedule: c.cacheSchedule, run: func(ctx context.Context) (int64, error) {
			return c.purger.PurgeExpired(ctx, c.now())
		}})
	}
	if c.audit != nil && c.retention > 0 {
		jobs = append(jobs, job{name: jobAudit, schedule: c.auditSchedule, run: func(ctx context.Context) (int64, error) {
			return c.audit.CleanupOlderThan(ctx, c.retention)
		}})
	}
	return jobs
}

// Start registers jobs with the cron scheduler and launches it if at least one job is enabled.
func (c *Cleaner) Start() error {
	jobs := c.jobs()
	if len(jobs) == 0 {
		return nil
	}

	for _, j := range jobs {
		j := j
		if _, err := c.cron.AddFunc(j.schedule, func() {
			_ = c.execute(context.Background(), j)
		}); err != nil {
			return fmt.Errorf("maintenance: schedule %s: %w", j.name, err)
		}
	}

	c.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	return c.cron.Stop()
}

// RunOnce executes all configured jobs sequentially and returns every failure.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error
	for _, j := range c.jobs() {
		errs = multierr.Append(errs, c.execute(ctx, j))
	}
	return errs
}

func (c *Cleaner) execute(ctx context.Context, j job) error {
	affected, err := j.run(ctx)
	if err != nil {
		metrics.MaintenanceRuns.WithLabelValues(j.name, "error").Inc()
		c.log.Warn("maintenance job failed", zap.String("job", j.name), zap.Error(err))
		return err
	}
	metrics.MaintenanceRuns.WithLabelValues(j.name, "success").Inc()
	if affected > 0 {
		c.log.Info("maintenance job completed", zap.String("job", j.name), zap.Int64("affected", affected))
	}
	return nil
}

// ReconcileStats reports the backlink rows touched by ReconcileMemberships.
type ReconcileStats struct {
	Linked   int64
	Unlinked int64
}

// ReconcileMemberships makes user_teams mirror team_members: missing backlinks
// are inserted and backlinks without a matching member row are removed.
func ReconcileMemberships(ctx context.Context, db *gorm.DB) (ReconcileStats, error) {
	if db == nil {
		return ReconcileStats{}, errors.New("reconcile memberships: db is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var stats ReconcileStats
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var missing []models.UserTeam
		if err := tx.Table("team_members AS tm").
			Select("tm.user_id AS user_id, tm.team_id AS team_id").
			Joins("LEFT JOIN user_teams ut ON ut.user_id = tm.user_id AND ut.team_id = tm.team_id").
			Where("ut.user_id IS NULL").
			Scan(&missing).Error; err != nil {
			return fmt.Errorf("reconcile memberships: find missing backlinks: %w", err)
		}
		if len(missing) > 0 {
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&missing)
			if result.Error != nil {
				return fmt.Errorf("reconcile memberships: insert backlinks: %w", result.Error)
			}
			stats.Linked = result.RowsAffected
		}

		members := tx.Table("team_members AS tm").
			Select("1").
			Where("tm.user_id = user_teams.user_id AND tm.team_id = user_teams.team_id")
		result := tx.Where("NOT EXISTS (?)", members).Delete(&models.UserTeam{})
		if result.Error != nil {
			return fmt.Errorf("reconcile memberships: remove orphaned backlinks: %w", result.Error)
		}
		stats.Unlinked = result.RowsAffected
		return nil
	})
	return stats, err
}
