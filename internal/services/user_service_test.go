package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/charlesng35/collabhub/internal/models"
	"github.com/charlesng35/collabhub/pkg/crypto"
	apperrors "github.com/charlesng35/collabhub/pkg/errors"
)

func newUserService(t *testing.T) (*UserService, *TeamService, func() *models.User) {
	t.Helper()

	db := openServiceTestDB(t)
	auditSvc, err := NewAuditService(db)
	require.NoError(t, err)

	userSvc, err := NewUserService(db, auditSvc)
	require.NoError(t, err)
	teamSvc, err := NewTeamService(db, auditSvc)
	require.NoError(t, err)

	seed := func() *models.User { return seedUser(t, db, "seed") }
	return userSvc, teamSvc, seed
}

func TestRegisterNormalisesAndHashes(t *testing.T) {
	svc, _, _ := newUserService(t)

	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "  Ada Lovelace ",
		Email:    "Ada@Example.COM",
		Password: "engines",
	})
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", user.Name)
	require.Equal(t, "ada@example.com", user.Email)
	require.True(t, user.Availability)
	require.NotEqual(t, "engines", user.PasswordHash)
	require.True(t, crypto.VerifyPassword(user.PasswordHash, "engines"))
	require.NotNil(t, user.Skills)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "engines"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "Ada Again", Email: "ADA@example.com", Password: "engines"})
	require.ErrorIs(t, err, ErrUserExists)
	require.Equal(t, "User already exists", apperrors.FromError(err).Message)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newUserService(t)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "nope", Password: "123"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	require.Len(t, apperrors.FromError(err).Fields, 3)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, seed := newUserService(t)
	user := seed()
	ctx := context.Background()

	name := "Grace"
	skills := []string{"Go", " SQL ", "Go"}
	available := false
	updated, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{
		Name:         &name,
		Skills:       &skills,
		Availability: &available,
	})
	require.NoError(t, err)
	require.Equal(t, "Grace", updated.Name)
	require.Equal(t, []string{"Go", "SQL"}, []string(updated.Skills))
	require.False(t, updated.Availability)

	short := "G"
	_, err = svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{Name: &short})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.UpdateProfile(ctx, "missing", UpdateProfileInput{Name: &name})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestListUsersFiltersAndHidesEmail(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "engines"})
	require.NoError(t, err)
	grace, err := svc.Register(ctx, RegisterInput{Name: "Grace", Email: "grace@example.com", Password: "compiler"})
	require.NoError(t, err)

	skills := []string{"COBOL"}
	unavailable := false
	_, err = svc.UpdateProfile(ctx, grace.ID, UpdateProfileInput{Skills: &skills, Availability: &unavailable})
	require.NoError(t, err)

	users, err := svc.List(ctx, UserFilters{})
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, user := range users {
		require.Empty(t, user.Email)
		require.Empty(t, user.PasswordHash)
	}

	bySkill, err := svc.List(ctx, UserFilters{Skills: []string{"cobol"}})
	require.NoError(t, err)
	require.Len(t, bySkill, 1)
	require.Equal(t, grace.ID, bySkill[0].ID)

	available := true
	byAvailability, err := svc.List(ctx, UserFilters{Availability: &available})
	require.NoError(t, err)
	require.Len(t, byAvailability, 1)
	require.Equal(t, "Ada", byAvailability[0].Name)
}

func TestProfileIncludesTeams(t *testing.T) {
	svc, teamSvc, seed := newUserService(t)
	user := seed()
	project := seedProject(t, svc.db, user, "Atlas", models.DomainWeb)
	ctx := context.Background()

	team, err := teamSvc.Create(ctx, user.ID, CreateTeamInput{TeamName: "Atlas Crew", ProjectID: project.ID, Description: "mapping"})
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, profile.Email)
	require.Len(t, profile.Teams, 1)
	require.Equal(t, team.ID, profile.Teams[0].ID)
	require.Equal(t, "Atlas Crew", profile.Teams[0].TeamName)
	require.Equal(t, models.TeamStatusOpen, profile.Teams[0].Status)

	_, err = svc.Profile(ctx, "missing")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestRecommendations(t *testing.T) {
	svc, _, seed := newUserService(t)
	user := seed()
	ctx := context.Background()

	skills := []string{"Python"}
	interests := []string{"IoT", "climate"}
	_, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{Skills: &skills, Interests: &interests})
	require.NoError(t, err)

	bySkill := seedProject(t, svc.db, user, "Vision", models.DomainAI, "python")
	byDomain := seedProject(t, svc.db, user, "Sensors", models.DomainIoT, "C")
	byTag := seedProject(t, svc.db, user, "Carbon", models.DomainWeb, "JS")
	require.NoError(t, svc.db.Model(byTag).Update("tags", datatypes.JSONSlice[string]{"Climate"}).Error)
	saved := seedProject(t, svc.db, user, "Saved", models.DomainAI, "Python")
	seedProject(t, svc.db, user, "Unrelated", models.DomainGameDev, "Unity")
	require.NoError(t, svc.db.Create(&models.UserSavedProject{UserID: user.ID, ProjectID: saved.ID}).Error)

	projects, err := svc.Recommendations(ctx, user.ID)
	require.NoError(t, err)

	ids := make([]string, 0, len(projects))
	for _, project := range projects {
		ids = append(ids, project.ID)
	}
	require.ElementsMatch(t, []string{bySkill.ID, byDomain.ID, byTag.ID}, ids)
}
