package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/charlesng35/collabhub/internal/cache"
	"github.com/charlesng35/collabhub/internal/models"
	apperrors "github.com/charlesng35/collabhub/pkg/errors"
	"github.com/charlesng35/collabhub/pkg/logger"
	"github.com/charlesng35/collabhub/pkg/metrics"
)

// ErrProjectNotFound indicates the requested project does not exist.
var ErrProjectNotFound = apperrors.NewNotFound("PROJECT_NOT_FOUND", "Project not found")

const (
	projectListLimit     = 50
	trendingLimit        = 6
	trendingCacheKey     = "projects:trending"
	defaultTrendingTTL   = time.Minute
	minProjectTitle      = 3
	minProjectDescLength = 10
)

// CreateProjectInput captures a new project submission.
type CreateProjectInput struct {
	Title             string
	Description       string
	Domain            string
	Difficulty        string
	SkillsRequired    []string
	EstimatedDuration string
	Tags              []string
}

// ProjectFilters narrows catalogue listings.
type ProjectFilters struct {
	Domain     string
	Difficulty string
	Skills     []string
	Search     string
}

// ProjectServiceOption customises a ProjectService.
type ProjectServiceOption func(*ProjectService)

// WithTrendingTTL controls how long the trending list stays cached.
func WithTrendingTTL(ttl time.Duration) ProjectServiceOption {
	return func(s *ProjectService) {
		if ttl > 0 {
			s.trendingTTL = ttl
		}
	}
}

// ProjectService manages the project catalogue and bookmarks.
type ProjectService struct {
	db           *gorm.DB
	cache        cache.Store
	auditService *AuditService
	trendingTTL  time.Duration
}

// NewProjectService constructs a ProjectService. The cache store is optional.
func NewProjectService(db *gorm.DB, store cache.Store, auditService *AuditService, opts ...ProjectServiceOption) (*ProjectService, error) {
	if db == nil {
		return nil, errors.New("project service: db is required")
	}
	svc := &ProjectService{
		db:           db,
		cache:        store,
		auditService: auditService,
		trendingTTL:  defaultTrendingTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// List returns up to 50 active projects newest first.
func (s *ProjectService) List(ctx context.Context, filters ProjectFilters) ([]models.Project, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).
		Model(&models.Project{}).
		Preload("CreatedBy", selectColumns("id", "name")).
		Where("is_active = ?", true)

	if domain := strings.TrimSpace(filters.Domain); domain != "" {
		query = query.Where("domain = ?", domain)
	}
	if difficulty := strings.TrimSpace(filters.Difficulty); difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", pattern, pattern)
	}

	var projects []models.Project
	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("project service: list projects: %w", err)
	}

	skills := normaliseList(filters.Skills)
	result := make([]models.Project, 0, min(len(projects), projectListLimit))
	for _, project := range projects {
		if len(skills) > 0 && !intersects(project.SkillsRequired, skills) {
			continue
		}
		result = append(result, project)
		if len(result) == projectListLimit {
			break
		}
	}
	return result, nil
}

// Trending returns the six newest active projects, served from cache when possible.
func (s *ProjectService) Trending(ctx context.Context) ([]models.Project, error) {
	ctx = ensureContext(ctx)

	if cached, ok := s.cachedTrending(ctx); ok {
		return cached, nil
	}

	var projects []models.Project
	if err := s.db.WithContext(ctx).
		Preload("CreatedBy", selectColumns("id", "name")).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(trendingLimit).
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("project service: trending projects: %w", err)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(projects); err == nil {
			if err := s.cache.Set(ctx, trendingCacheKey, payload, s.trendingTTL); err != nil {
				logger.WithModule("projects").Warn("failed to cache trending projects", zap.Error(err))
			}
		}
	}
	return projects, nil
}

func (s *ProjectService) cachedTrending(ctx context.Context) ([]models.Project, bool) {
	if s.cache == nil {
		return nil, false
	}

	payload, ok, err := s.cache.Get(ctx, trendingCacheKey)
	if err != nil {
		metrics.CacheLookups.WithLabelValues(trendingCacheKey, "error").Inc()
		logger.WithModule("projects").Warn("trending cache lookup failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		metrics.CacheLookups.WithLabelValues(trendingCacheKey, "miss").Inc()
		return nil, false
	}

	var projects []models.Project
	if err := json.Unmarshal(payload, &projects); err != nil {
		metrics.CacheLookups.WithLabelValues(trendingCacheKey, "error").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues(trendingCacheKey, "hit").Inc()
	return projects, true
}

// Get loads a project with its creator summary.
func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	ctx = ensureContext(ctx)

	var project models.Project
	err := s.db.WithContext(ctx).
		Preload("CreatedBy", selectColumns(userSummaryColumns...)).
		First(&project, "id = ?", strings.TrimSpace(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("project service: load project: %w", err)
	}
	return &project, nil
}

// Create publishes a project on behalf of the actor.
func (s *ProjectService) Create(ctx context.Context, actorID string, input CreateProjectInput) (*models.Project, error) {
	ctx = ensureContext(ctx)

	project := &models.Project{
		Title:             strings.TrimSpace(input.Title),
		Description:       strings.TrimSpace(input.Description),
		Domain:            strings.TrimSpace(input.Domain),
		Difficulty:        strings.TrimSpace(input.Difficulty),
		SkillsRequired:    normaliseList(input.SkillsRequired),
		EstimatedDuration: strings.TrimSpace(input.EstimatedDuration),
		Tags:              normaliseList(input.Tags),
		IsActive:          true,
		CreatedByID:       actorID,
	}
	if fields := validateProject(project); len(fields) > 0 {
		return nil, apperrors.NewValidation(fields)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUserExists(tx, actorID); err != nil {
			return err
		}
		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("project service: create project: %w", err)
		}
		return nil
	})
	if err != nil {
		if appErr, ok := asAppError(err); ok {
			return nil, appErr
		}
		return nil, err
	}

	s.invalidateTrending(ctx)
	recordAudit(s.auditService, ctx, AuditEntry{
		ActorID:  stringPtr(actorID),
		Action:   "project.create",
		Resource: project.ID,
		Result:   "success",
		Metadata: map[string]any{"domain": project.Domain},
	})

	var created models.Project
	if err := s.db.WithContext(ctx).
		Preload("CreatedBy", selectColumns("id", "name")).
		First(&created, "id = ?", project.ID).Error; err != nil {
		return nil, fmt.Errorf("project service: reload project: %w", err)
	}
	return &created, nil
}

// ToggleSave bookmarks the project for the actor, or removes an existing
// bookmark. It reports whether the project is saved afterwards.
func (s *ProjectService) ToggleSave(ctx context.Context, actorID, projectID string) (bool, error) {
	ctx = ensureContext(ctx)
	projectID = strings.TrimSpace(projectID)

	var saved bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var projects int64
		if err := tx.Model(&models.Project{}).Where("id = ?", projectID).Count(&projects).Error; err != nil {
			return fmt.Errorf("project service: check project: %w", err)
		}
		if projects == 0 {
			return ErrProjectNotFound
		}
		if err := ensureUserExists(tx, actorID); err != nil {
			return err
		}

		link := models.UserSavedProject{UserID: actorID, ProjectID: projectID}
		result := tx.Where("user_id = ? AND project_id = ?", actorID, projectID).Delete(&models.UserSavedProject{})
		if result.Error != nil {
			return fmt.Errorf("project service: unsave project: %w", result.Error)
		}
		if result.RowsAffected > 0 {
			saved = false
			return nil
		}

		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("project service: save project: %w", err)
		}
		saved = true
		return nil
	})
	if err != nil {
		if appErr, ok := asAppError(err); ok {
			return false, appErr
		}
		return false, err
	}
	return saved, nil
}

func (s *ProjectService) invalidateTrending(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, trendingCacheKey); err != nil {
		logger.WithModule("projects").Warn("failed to invalidate trending cache", zap.Error(err))
	}
}

func validateProject(project *models.Project) []apperrors.FieldError {
	var fields []apperrors.FieldError
	if len([]rune(project.Title)) < minProjectTitle {
		fields = append(fields, apperrors.FieldError{Field: "title", Message: "Title must be at least 3 characters"})
	}
	if len([]rune(project.Description)) < minProjectDescLength {
		fields = append(fields, apperrors.FieldError{Field: "description", Message: "Description must be at least 10 characters"})
	}
	if !slices.Contains(models.ProjectDomains, project.Domain) {
		fields = append(fields, apperrors.FieldError{Field: "domain", Message: "domain must be one of " + strings.Join(models.ProjectDomains, ", ")})
	}
	if !slices.Contains(models.Difficulties, project.Difficulty) {
		fields = append(fields, apperrors.FieldError{Field: "difficulty", Message: "difficulty must be one of " + strings.Join(models.Difficulties, ", ")})
	}
	return fields
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return replacer.Replace(value)
}
