package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/collabhub/internal/database/testutil"
	"github.com/charlesng35/collabhub/internal/models"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
}

func seedUser(t *testing.T, db *gorm.DB, name string, skills ...string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "not-a-real-hash",
		Skills:       skills,
		Interests:    []string{},
		Availability: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProject(t *testing.T, db *gorm.DB, creator *models.User, title, domain string, skills ...string) *models.Project {
	t.Helper()

	project := &models.Project{
		Title:          title,
		Description:    "A project description long enough",
		Domain:         domain,
		Difficulty:     models.DifficultyIntermediate,
		SkillsRequired: skills,
		Tags:           []string{},
		IsActive:       true,
		CreatedByID:    creator.ID,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

// steppingClock returns a clock that advances one second per call.
func steppingClock() func() time.Time {
	current := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func pendingRequests(t *testing.T, db *gorm.DB, teamID string) []models.JoinRequest {
	t.Helper()

	var requests []models.JoinRequest
	require.NoError(t, db.Where("team_id = ?", teamID).Find(&requests).Error)
	return requests
}

func teamMembers(t *testing.T, db *gorm.DB, teamID string) []models.TeamMember {
	t.Helper()

	var members []models.TeamMember
	require.NoError(t, db.Where("team_id = ?", teamID).Order("position ASC").Find(&members).Error)
	return members
}

func userTeamIDs(t *testing.T, db *gorm.DB, userID string) []string {
	t.Helper()

	var ids []string
	require.NoError(t, db.Model(&models.UserTeam{}).Where("user_id = ?", userID).Pluck("team_id", &ids).Error)
	return ids
}
