package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/collabhub/internal/services"
	"github.com/charlesng35/collabhub/pkg/response"
)

type TeamHandler struct {
	svc *services.TeamService
}

type roleSlotRequest struct {
	Role   string   `json:"role" validate:"max=100"`
	Skills []string `json:"skills" validate:"omitempty,dive,max=64"`
}

type createTeamRequest struct {
	TeamName    string            `json:"teamName" validate:"required,notblank,min=3,max=100"`
	Project     string            `json:"project" validate:"required,uuid"`
	Description string            `json:"description" validate:"required,notblank,min=10,max=2000"`
	MaxMembers  *int              `json:"maxMembers" validate:"omitempty,gte=1,lte=50"`
	RolesNeeded []roleSlotRequest `json:"rolesNeeded" validate:"required,dive"`
}

func (r *createTeamRequest) normalize() {
	r.TeamName = strings.TrimSpace(r.TeamName)
	r.Project = strings.TrimSpace(r.Project)
	r.Description = strings.TrimSpace(r.Description)
	for i := range r.RolesNeeded {
		r.RolesNeeded[i].Role = strings.TrimSpace(r.RolesNeeded[i].Role)
		r.RolesNeeded[i].Skills = trimAll(r.RolesNeeded[i].Skills)
	}
}

type joinTeamRequest struct {
	Message string `json:"message" validate:"max=1000"`
}

func (r *joinTeamRequest) normalize() {
	r.Message = strings.TrimSpace(r.Message)
}

func NewTeamHandler(svc *services.TeamService) *TeamHandler {
	return &TeamHandler{svc: svc}
}

// GET /api/teams
func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.svc.List(requestContext(c), services.TeamFilters{
		Status: strings.TrimSpace(c.Query("status")),
		Skills: services.SplitCSV(c.Query("skills")),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, teams)
}

// GET /api/teams/:id
func (h *TeamHandler) Get(c *gin.Context) {
	team, err := h.svc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, team)
}

// POST /api/teams
func (h *TeamHandler) Create(c *gin.Context) {
	var body createTeamRequest
	if !bindAndValidate(c, &body) {
		return
	}

	roles := make([]services.RoleSlotInput, 0, len(body.RolesNeeded))
	for _, slot := range body.RolesNeeded {
		roles = append(roles, services.RoleSlotInput{Role: slot.Role, Skills: slot.Skills})
	}

	team, err := h.svc.Create(requestContext(c), currentUserID(c), services.CreateTeamInput{
		TeamName:    body.TeamName,
		ProjectID:   body.Project,
		Description: body.Description,
		MaxMembers:  body.MaxMembers,
		RolesNeeded: roles,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, team)
}

// POST /api/teams/:id/join
func (h *TeamHandler) Join(c *gin.Context) {
	var body joinTeamRequest
	if !bindOptionalJSON(c, &body) {
		return
	}

	if err := h.svc.RequestJoin(requestContext(c), c.Param("id"), currentUserID(c), body.Message); err != nil {
		response.Error(c, err)
		return
	}
	response.Confirm(c, "Join request sent successfully")
}

// POST /api/teams/:id/requests/:requestId/:action
func (h *TeamHandler) ResolveRequest(c *gin.Context) {
	action, err := h.svc.ResolveJoinRequest(
		requestContext(c),
		c.Param("id"),
		c.Param("requestId"),
		c.Param("action"),
		currentUserID(c),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Confirm(c, action.ConfirmationMessage())
}
