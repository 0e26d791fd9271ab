package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/charlesng35/collabhub/internal/models"
	"github.com/charlesng35/collabhub/pkg/crypto"
	apperrors "github.com/charlesng35/collabhub/pkg/errors"
	"github.com/charlesng35/collabhub/pkg/validator"
)

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = apperrors.New("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	// ErrUserExists is returned when the email is already registered.
	ErrUserExists = apperrors.NewConflict("USER_EXISTS", "User already exists")
)

const (
	userListLimit        = 20
	recommendationsLimit = 10
	minNameLength        = 2
)

// RegisterInput describes a self-service sign up.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateProfileInput enumerates mutable profile attributes. Nil fields are left untouched.
type UpdateProfileInput struct {
	Name         *string
	Year         *string
	Branch       *string
	Skills       *[]string
	Interests    *[]string
	Availability *bool
	Github       *string
	Linkedin     *string
}

// UserFilters captures directory listing filters.
type UserFilters struct {
	Skills       []string
	Availability *bool
}

// UserService manages registration, profiles and the member directory.
type UserService struct {
	db           *gorm.DB
	auditService *AuditService
}

// NewUserService constructs a UserService instance.
func NewUserService(db *gorm.DB, auditService *AuditService) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	return &UserService{
		db:           db,
		auditService: auditService,
	}, nil
}

// Register provisions a new user with a hashed password. Emails are stored lower-cased.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var fields []apperrors.FieldError
	if len([]rune(name)) < minNameLength {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: "name must be at least 2 characters"})
	}
	if err := validator.ValidateVar(email, "required,email"); err != nil {
		fields = append(fields, apperrors.FieldError{Field: "email", Message: "email must be a valid email address"})
	}
	if len(input.Password) < crypto.MinPasswordLength {
		fields = append(fields, apperrors.FieldError{Field: "password", Message: "password must be at least 6 characters"})
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidation(fields)
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("user service: check email: %w", err)
	}
	if existing > 0 {
		return nil, ErrUserExists
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("user service: hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Skills:       []string{},
		Interests:    []string{},
		Availability: true,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("user service: create user: %w", err)
	}

	recordAudit(s.auditService, ctx, AuditEntry{
		ActorID:  stringPtr(user.ID),
		Action:   "user.register",
		Resource: user.ID,
		Result:   "success",
	})

	return user, nil
}

// Get returns the full user record, including email. Only for the user themselves.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", strings.TrimSpace(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user service: load user: %w", err)
	}
	return &user, nil
}

// Profile returns the public view of a user with team summaries populated.
func (s *UserService) Profile(ctx context.Context, id string) (*models.User, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Teams", selectColumns("id", "team_name", "project_id", "status")).
		First(&user, "id = ?", strings.TrimSpace(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user service: load profile: %w", err)
	}

	public := user.Public()
	return &public, nil
}

// UpdateProfile applies the supplied profile changes and returns the updated user.
func (s *UserService) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*models.User, error) {
	ctx = ensureContext(ctx)

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len([]rune(name)) < minNameLength {
			return nil, apperrors.NewValidation([]apperrors.FieldError{{Field: "name", Message: "name must be at least 2 characters"}})
		}
		updates["name"] = name
	}
	if input.Year != nil {
		updates["year"] = strings.TrimSpace(*input.Year)
	}
	if input.Branch != nil {
		updates["branch"] = strings.TrimSpace(*input.Branch)
	}
	if input.Skills != nil {
		skills := normaliseList(*input.Skills)
		user.Skills = skills
		updates["skills"] = user.Skills
	}
	if input.Interests != nil {
		interests := normaliseList(*input.Interests)
		user.Interests = interests
		updates["interests"] = user.Interests
	}
	if input.Availability != nil {
		updates["availability"] = *input.Availability
	}
	if input.Github != nil {
		updates["github"] = strings.TrimSpace(*input.Github)
	}
	if input.Linkedin != nil {
		updates["linkedin"] = strings.TrimSpace(*input.Linkedin)
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("user service: update profile: %w", err)
	}

	recordAudit(s.auditService, ctx, AuditEntry{
		ActorID:  stringPtr(user.ID),
		Action:   "user.profile.update",
		Resource: user.ID,
		Result:   "success",
	})

	return s.Get(ctx, user.ID)
}

// List returns up to 20 public profiles matching the filters.
func (s *UserService) List(ctx context.Context, filters UserFilters) ([]models.User, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Model(&models.User{}).Order("created_at DESC")
	if filters.Availability != nil {
		query = query.Where("availability = ?", *filters.Availability)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("user service: list users: %w", err)
	}

	skills := normaliseList(filters.Skills)
	result := make([]models.User, 0, min(len(users), userListLimit))
	for _, user := range users {
		if len(skills) > 0 && !intersects(user.Skills, skills) {
			continue
		}
		result = append(result, user.Public())
		if len(result) == userListLimit {
			break
		}
	}
	return result, nil
}

// Recommendations suggests up to ten projects matching the user's skills or
// interests, skipping projects already saved.
func (s *UserService) Recommendations(ctx context.Context, userID string) ([]models.Project, error) {
	ctx = ensureContext(ctx)

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	var saved []string
	if err := s.db.WithContext(ctx).Model(&models.UserSavedProject{}).
		Where("user_id = ?", user.ID).
		Pluck("project_id", &saved).Error; err != nil {
		return nil, fmt.Errorf("user service: load saved projects: %w", err)
	}
	savedSet := make(map[string]struct{}, len(saved))
	for _, id := range saved {
		savedSet[id] = struct{}{}
	}

	var projects []models.Project
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("user service: list projects: %w", err)
	}

	result := make([]models.Project, 0, recommendationsLimit)
	for _, project := range projects {
		if _, isSaved := savedSet[project.ID]; isSaved {
			continue
		}
		if !matchesProfile(project, user) {
			continue
		}
		result = append(result, project)
		if len(result) == recommendationsLimit {
			break
		}
	}
	return result, nil
}

func matchesProfile(project models.Project, user *models.User) bool {
	return intersects(project.SkillsRequired, user.Skills) ||
		containsFold(user.Interests, project.Domain) ||
		intersects(project.Tags, user.Interests)
}
