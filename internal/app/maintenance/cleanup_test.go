package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/collabhub/internal/cache"
	testutil "github.com/charlesng35/collabhub/internal/database/testutil"
	"github.com/charlesng35/collabhub/internal/models"
	"github.com/charlesng35/collabhub/internal/services"
)

func TestReconcileMemberships(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	lead, outsider, team := seedTeam(t, db)

	require.NoError(t, db.Where("user_id = ?", lead.ID).Delete(&models.UserTeam{}).Error)
	require.NoError(t, db.Create(&models.UserTeam{UserID: outsider.ID, TeamID: team.ID}).Error)

	stats, err := ReconcileMemberships(context.Background(), db)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.Linked)
	require.Equal(t, int64(1), stats.Unlinked)

	var links []models.UserTeam
	require.NoError(t, db.Find(&links).Error)
	require.Equal(t, []models.UserTeam{{UserID: lead.ID, TeamID: team.ID}}, links)

	stats, err = ReconcileMemberships(context.Background(), db)
	require.NoError(t, err)
	require.Zero(t, stats.Linked)
	require.Zero(t, stats.Unlinked)
}

func TestReconcileMembershipsRequiresDB(t *testing.T) {
	_, err := ReconcileMemberships(context.Background(), nil)
	require.Error(t, err)
}

func TestCleanerRunOnce(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	now := time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)

	auditSvc, err := services.NewAuditService(db)
	require.NoError(t, err)

	lead, _, _ := seedTeam(t, db)
	require.NoError(t, db.Where("user_id = ?", lead.ID).Delete(&models.UserTeam{}).Error)

	store := cache.NewDatabaseStore(db)
	require.NoError(t, db.Create(&models.CacheEntry{
		Key:       "stale",
		Value:     []byte("x"),
		ExpiresAt: now.Add(-time.Minute),
	}).Error)
	require.NoError(t, db.Create(&models.CacheEntry{
		Key:       "fresh",
		Value:     []byte("y"),
		ExpiresAt: now.Add(time.Hour),
	}).Error)

	require.NoError(t, db.Model(&models.AuditLog{}).Where("1 = 1").
		Update("created_at", time.Now().AddDate(0, 0, -10)).Error)

	c := NewCleaner(db, auditSvc,
		WithNow(func() time.Time { return now }),
		WithCachePurger(store),
		WithAuditRetentionDays(7),
		WithCron(cron.New(cron.WithLogger(cron.DiscardLogger))),
	)
	require.Len(t, c.jobs(), 3)

	require.NoError(t, c.RunOnce(context.Background()))

	var links int64
	require.NoError(t, db.Model(&models.UserTeam{}).Where("user_id = ?", lead.ID).Count(&links).Error)
	require.Equal(t, int64(1), links)

	var keys []string
	require.NoError(t, db.Model(&models.CacheEntry{}).Pluck("key", &keys).Error)
	require.Equal(t, []string{"fresh"}, keys)

	var auditCount int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&auditCount).Error)
	require.Zero(t, auditCount)
}

func TestCleanerWithoutDependencies(t *testing.T) {
	c := NewCleaner(nil, nil)
	require.Empty(t, c.jobs())
	require.NoError(t, c.Start())
	require.NoError(t, c.RunOnce(context.Background()))
	<-c.Stop().Done()
}

func TestCleanerRejectsInvalidSchedule(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	c := NewCleaner(db, nil, WithReconcileSchedule("not a schedule"))
	require.Error(t, c.Start())
}

func seedTeam(t *testing.T, db *gorm.DB) (*models.User, *models.User, *models.Team) {
	t.Helper()

	audit, err := services.NewAuditService(db)
	require.NoError(t, err)
	users, err := services.NewUserService(db, audit)
	require.NoError(t, err)
	projects, err := services.NewProjectService(db, nil, audit)
	require.NoError(t, err)
	teams, err := services.NewTeamService(db, audit)
	require.NoError(t, err)

	ctx := context.Background()
	lead, err := users.Register(ctx, services.RegisterInput{Name: "Lead", Email: "lead@example.com", Password: "secret1"})
	require.NoError(t, err)
	outsider, err := users.Register(ctx, services.RegisterInput{Name: "Outsider", Email: "out@example.com", Password: "secret1"})
	require.NoError(t, err)

	project, err := projects.Create(ctx, lead.ID, services.CreateProjectInput{
		Title:          "Soil sensing",
		Description:    "Low cost soil moisture sensing network",
		Domain:         models.DomainIoT,
		Difficulty:     models.DifficultyBeginner,
		SkillsRequired: []string{"Embedded"},
	})
	require.NoError(t, err)

	team, err := teams.Create(ctx, lead.ID, services.CreateTeamInput{
		TeamName:    "Roots",
		ProjectID:   project.ID,
		Description: "Field deployment crew",
	})
	require.NoError(t, err)
	return lead, outsider, team
}
