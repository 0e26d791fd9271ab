package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/charlesng35/collabhub/internal/models"
	apperrors "github.com/charlesng35/collabhub/pkg/errors"
	"github.com/charlesng35/collabhub/pkg/logger"
	"github.com/charlesng35/collabhub/pkg/metrics"
)

var (
	// ErrTeamNotFound indicates the requested team does not exist.
	ErrTeamNotFound = apperrors.NewNotFound("TEAM_NOT_FOUND", "Team not found")
	// ErrJoinRequestNotFound indicates the request id is not pending on the team.
	ErrJoinRequestNotFound = apperrors.NewNotFound("JOIN_REQUEST_NOT_FOUND", "Join request not found")
	// ErrAlreadyTeamMember signals the actor already belongs to the team.
	ErrAlreadyTeamMember = apperrors.NewConflict("ALREADY_MEMBER", "Already a team member")
	// ErrJoinRequestExists signals the actor already has a pending request.
	ErrJoinRequestExists = apperrors.NewConflict("JOIN_REQUEST_EXISTS", "Join request already sent")
	// ErrInvalidJoinAction is returned for resolutions other than accept or reject.
	ErrInvalidJoinAction = apperrors.New("INVALID_JOIN_ACTION", "Action must be accept or reject", http.StatusBadRequest)
	// ErrTeamProjectNotFound rejects team creation against an unknown project.
	ErrTeamProjectNotFound = apperrors.New("INVALID_PROJECT", "Project not found", http.StatusBadRequest)
	// ErrTeamFull is returned on accept when capacity enforcement is enabled.
	ErrTeamFull = apperrors.NewConflict("TEAM_FULL", "Team is full")
)

// JoinAction is the creator's decision on a pending join request.
type JoinAction string

const (
	JoinActionAccept JoinAction = "accept"
	JoinActionReject JoinAction = "reject"
)

// ParseJoinAction validates a raw action path segment.
func ParseJoinAction(raw string) (JoinAction, error) {
	switch JoinAction(strings.ToLower(strings.TrimSpace(raw))) {
	case JoinActionAccept:
		return JoinActionAccept, nil
	case JoinActionReject:
		return JoinActionReject, nil
	default:
		return "", ErrInvalidJoinAction
	}
}

// ConfirmationMessage is the human readable outcome returned to the creator.
func (a JoinAction) ConfirmationMessage() string {
	return fmt.Sprintf("Join request %sed successfully", a)
}

// RoleSlotInput describes one role a new team is recruiting for.
type RoleSlotInput struct {
	Role   string
	Skills []string
}

// CreateTeamInput captures new team metadata.
type CreateTeamInput struct {
	TeamName    string
	ProjectID   string
	Description string
	MaxMembers  *int
	RolesNeeded []RoleSlotInput
}

// TeamFilters narrows team listings.
type TeamFilters struct {
	Status string
	Skills []string
}

// TeamServiceOption customises a TeamService.
type TeamServiceOption func(*TeamService)

// WithCapacityEnforcement rejects accepts that would push members past maxMembers.
func WithCapacityEnforcement(enabled bool) TeamServiceOption {
	return func(s *TeamService) {
		s.enforceCapacity = enabled
	}
}

// WithDefaultMaxMembers overrides the capacity applied when a team omits it.
func WithDefaultMaxMembers(limit int) TeamServiceOption {
	return func(s *TeamService) {
		if limit > 0 {
			s.defaultMaxMembers = limit
		}
	}
}

// WithTeamClock overrides the time source, mainly for tests.
func WithTeamClock(now func() time.Time) TeamServiceOption {
	return func(s *TeamService) {
		if now != nil {
			s.now = now
		}
	}
}

// TeamService owns team formation and the join request workflow.
type TeamService struct {
	db                *gorm.DB
	auditService      *AuditService
	enforceCapacity   bool
	defaultMaxMembers int
	now               func() time.Time
}

// NewTeamService constructs a TeamService instance.
func NewTeamService(db *gorm.DB, auditService *AuditService, opts ...TeamServiceOption) (*TeamService, error) {
	if db == nil {
		return nil, errors.New("team service: db is required")
	}
	svc := &TeamService{
		db:                db,
		auditService:      auditService,
		defaultMaxMembers: models.DefaultMaxMembers,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Create registers a new team. The creator becomes its first member with the
// Team Lead role and the team is linked back onto the creator.
func (s *TeamService) Create(ctx context.Context, actorID string, input CreateTeamInput) (*models.Team, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.TeamName)
	projectID := strings.TrimSpace(input.ProjectID)
	description := strings.TrimSpace(input.Description)

	var fields []apperrors.FieldError
	if name == "" {
		fields = append(fields, apperrors.FieldError{Field: "teamName", Message: "teamName is required"})
	}
	if projectID == "" {
		fields = append(fields, apperrors.FieldError{Field: "project", Message: "project is required"})
	}
	if description == "" {
		fields = append(fields, apperrors.FieldError{Field: "description", Message: "description is required"})
	}
	maxMembers := s.defaultMaxMembers
	if input.MaxMembers != nil {
		if *input.MaxMembers <= 0 {
			fields = append(fields, apperrors.FieldError{Field: "maxMembers", Message: "maxMembers must be positive"})
		}
		maxMembers = *input.MaxMembers
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidation(fields)
	}

	now := s.now().UTC()
	team := &models.Team{
		BaseModel:   models.BaseModel{CreatedAt: now, UpdatedAt: now},
		TeamName:    name,
		ProjectID:   projectID,
		Description: description,
		MaxMembers:  maxMembers,
		CreatedByID: actorID,
		Status:      models.TeamStatusOpen,
		Members: []models.TeamMember{{
			UserID:   actorID,
			Role:     models.RoleTeamLead,
			JoinedAt: now,
			Position: 0,
		}},
		RolesNeeded: buildRoleSlots(input.RolesNeeded),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUserExists(tx, actorID); err != nil {
			return err
		}

		var projects int64
		if err := tx.Model(&models.Project{}).Where("id = ?", projectID).Count(&projects).Error; err != nil {
			return fmt.Errorf("team service: check project: %w", err)
		}
		if projects == 0 {
			return ErrTeamProjectNotFound
		}

		if err := tx.Create(team).Error; err != nil {
			return fmt.Errorf("team service: create team: %w", err)
		}
		if err := linkUserTeam(tx, actorID, team.ID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if appErr, ok := asAppError(err); ok {
			return nil, appErr
		}
		return nil, err
	}

	metrics.TeamsCreated.Inc()
	recordAudit(s.auditService, ctx, AuditEntry{
		ActorID:  stringPtr(actorID),
		Action:   "team.create",
		Resource: team.ID,
		Result:   "success",
		Metadata: map[string]any{
			"team_name":  team.TeamName,
			"project_id": team.ProjectID,
		},
	})

	return s.Get(ctx, team.ID)
}

// List returns teams newest first with project, creator and member users populated.
// Skill filters match any skill of any role slot.
func (s *TeamService) List(ctx context.Context, filters TeamFilters) ([]models.Team, error) {
	ctx = ensureContext(ctx)

	query := populateTeam(s.db.WithContext(ctx).Model(&models.Team{}))
	if status := strings.TrimSpace(filters.Status); status != "" {
		query = query.Where("status = ?", status)
	}

	var teams []models.Team
	if err := query.Order("created_at DESC").Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("team service: list teams: %w", err)
	}

	skills := normaliseList(filters.Skills)
	if len(skills) == 0 {
		return teams, nil
	}

	filtered := make([]models.Team, 0, len(teams))
	for _, team := range teams {
		if teamNeedsAnySkill(team, skills) {
			filtered = append(filtered, team)
		}
	}
	return filtered, nil
}

// Get loads a single populated team.
func (s *TeamService) Get(ctx context.Context, id string) (*models.Team, error) {
	ctx = ensureContext(ctx)

	var team models.Team
	err := populateTeam(s.db.WithContext(ctx)).First(&team, "id = ?", strings.TrimSpace(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("team service: load team: %w", err)
	}
	return &team, nil
}

// RequestJoin records a pending join request from the actor.
func (s *TeamService) RequestJoin(ctx context.Context, teamID, actorID, message string) error {
	ctx = ensureContext(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := lockTeam(tx, teamID)
		if err != nil {
			return err
		}
		if err := ensureUserExists(tx, actorID); err != nil {
			return err
		}

		if err := tx.Where("team_id = ?", team.ID).Find(&team.Members).Error; err != nil {
			return fmt.Errorf("team service: load members: %w", err)
		}
		if team.HasMember(actorID) {
			return ErrAlreadyTeamMember
		}

		if err := tx.Where("team_id = ?", team.ID).Find(&team.JoinRequests).Error; err != nil {
			return fmt.Errorf("team service: load join requests: %w", err)
		}
		if team.HasPendingRequest(actorID) {
			return ErrJoinRequestExists
		}

		request := &models.JoinRequest{
			TeamID:      team.ID,
			UserID:      actorID,
			Message:     strings.TrimSpace(message),
			RequestedAt: s.now().UTC(),
		}
		if err := tx.Create(request).Error; err != nil {
			if isUniqueConstraintError(err) {
				return ErrJoinRequestExists
			}
			return fmt.Errorf("team service: create join request: %w", err)
		}
		return nil
	})

	switch {
	case err == nil:
		metrics.JoinRequests.WithLabelValues("created").Inc()
	case errors.Is(err, ErrAlreadyTeamMember):
		metrics.JoinRequests.WithLabelValues("member").Inc()
	case errors.Is(err, ErrJoinRequestExists):
		metrics.JoinRequests.WithLabelValues("duplicate").Inc()
	default:
		metrics.JoinRequests.WithLabelValues("error").Inc()
	}
	if err != nil {
		if appErr, ok := asAppError(err); ok {
			return appErr
		}
		return err
	}

	recordAudit(s.auditService, ctx, AuditEntry{
		ActorID:  stringPtr(actorID),
		Action:   "team.join_request",
		Resource: teamID,
		Result:   "success",
	})
	return nil
}

// ResolveJoinRequest accepts or rejects a pending request. Only the team
// creator may resolve. Membership, the user backlink and the removal of the
// request commit together.
func (s *TeamService) ResolveJoinRequest(ctx context.Context, teamID, requestID, action, actorID string) (JoinAction, error) {
	ctx = ensureContext(ctx)

	var (
		resolved  JoinAction
		requester string
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := lockTeam(tx, teamID)
		if err != nil {
			return err
		}
		if team.CreatedByID != actorID {
			return apperrors.ErrForbidden
		}

		var request models.JoinRequest
		err = tx.Where("id = ? AND team_id = ?", strings.TrimSpace(requestID), team.ID).Take(&request).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJoinRequestNotFound
		}
		if err != nil {
			return fmt.Errorf("team service: load join request: %w", err)
		}

		resolved, err = ParseJoinAction(action)
		if err != nil {
			return err
		}
		requester = request.UserID

		if resolved == JoinActionAccept {
			if err := s.admitMember(tx, team, request.UserID); err != nil {
				return err
			}
		}

		if err := tx.Delete(&request).Error; err != nil {
			return fmt.Errorf("team service: delete join request: %w", err)
		}
		return nil
	})
	if err != nil {
		if appErr, ok := asAppError(err); ok {
			return "", appErr
		}
		return "", err
	}

	metrics.JoinResolutions.WithLabelValues(string(resolved)).Inc()
	recordAudit(s.auditService, ctx, AuditEntry{
		ActorID:  stringPtr(actorID),
		Action:   "team.join_request." + string(resolved),
		Resource: teamID,
		Result:   "success",
		Metadata: map[string]any{
			"request_id": requestID,
			"user_id":    requester,
		},
	})
	return resolved, nil
}

// admitMember appends the requester to the member list unless already present.
func (s *TeamService) admitMember(tx *gorm.DB, team *models.Team, userID string) error {
	var members []models.TeamMember
	if err := tx.Where("team_id = ?", team.ID).Order("position ASC").Find(&members).Error; err != nil {
		return fmt.Errorf("team service: load members: %w", err)
	}
	team.Members = members

	if team.HasMember(userID) {
		logger.WithModule("teams").Info("join request accepted for existing member",
			zap.String("team_id", team.ID),
			zap.String("user_id", userID),
		)
		return linkUserTeam(tx, userID, team.ID)
	}

	if s.enforceCapacity && len(members) >= team.MaxMembers {
		return ErrTeamFull
	}

	position := 0
	if n := len(members); n > 0 {
		position = members[n-1].Position + 1
	}

	member := &models.TeamMember{
		TeamID:   team.ID,
		UserID:   userID,
		Role:     models.RoleMember,
		JoinedAt: s.now().UTC(),
		Position: position,
	}
	if err := tx.Create(member).Error; err != nil {
		return fmt.Errorf("team service: add member: %w", err)
	}
	return linkUserTeam(tx, userID, team.ID)
}

func lockTeam(tx *gorm.DB, teamID string) (*models.Team, error) {
	var team models.Team
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Take(&team, "id = ?", strings.TrimSpace(teamID)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("team service: load team: %w", err)
	}
	return &team, nil
}

func ensureUserExists(tx *gorm.DB, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return apperrors.ErrUnauthorized
	}
	var count int64
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return fmt.Errorf("load actor: %w", err)
	}
	if count == 0 {
		return apperrors.ErrUnauthorized
	}
	return nil
}

func linkUserTeam(tx *gorm.DB, userID, teamID string) error {
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserTeam{UserID: userID, TeamID: teamID}).Error
	if err != nil {
		return fmt.Errorf("link user team: %w", err)
	}
	return nil
}

func buildRoleSlots(inputs []RoleSlotInput) []models.RoleSlot {
	slots := make([]models.RoleSlot, 0, len(inputs))
	for _, input := range inputs {
		role := strings.TrimSpace(input.Role)
		if role == "" {
			continue
		}
		slots = append(slots, models.RoleSlot{
			Role:     role,
			Skills:   normaliseList(input.Skills),
			Position: len(slots),
		})
	}
	return slots
}

func teamNeedsAnySkill(team models.Team, skills []string) bool {
	for _, slot := range team.RolesNeeded {
		if intersects(slot.Skills, skills) {
			return true
		}
	}
	return false
}

func populateTeam(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Project").
		Preload("CreatedBy", selectColumns("id", "name")).
		Preload("Members", orderBy("position ASC")).
		Preload("Members.User", selectColumns(userSummaryColumns...)).
		Preload("RolesNeeded", orderBy("position ASC")).
		Preload("JoinRequests", orderBy("requested_at ASC")).
		Preload("JoinRequests.User", selectColumns(userSummaryColumns...))
}
