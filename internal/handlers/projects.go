package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/collabhub/internal/services"
	"github.com/charlesng35/collabhub/pkg/response"
)

type ProjectHandler struct {
	svc *services.ProjectService
}

type createProjectRequest struct {
	Title             string   `json:"title" validate:"required,notblank,min=3,max=200"`
	Description       string   `json:"description" validate:"required,notblank,min=10,max=5000"`
	Domain            string   `json:"domain" validate:"required,oneof=Web AI App IoT Cloud 'Data Science' Blockchain 'Game Dev'"`
	Difficulty        string   `json:"difficulty" validate:"required,oneof=Beginner Intermediate Advanced"`
	SkillsRequired    []string `json:"skillsRequired" validate:"required,dive,max=64"`
	EstimatedDuration string   `json:"estimatedDuration" validate:"max=64"`
	Tags              []string `json:"tags" validate:"omitempty,dive,max=64"`
}

func (r *createProjectRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Domain = strings.TrimSpace(r.Domain)
	r.Difficulty = strings.TrimSpace(r.Difficulty)
	r.EstimatedDuration = strings.TrimSpace(r.EstimatedDuration)
	if r.SkillsRequired != nil {
		r.SkillsRequired = trimAll(r.SkillsRequired)
	}
	r.Tags = trimAll(r.Tags)
}

func NewProjectHandler(svc *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.svc.List(requestContext(c), services.ProjectFilters{
		Domain:     strings.TrimSpace(c.Query("domain")),
		Difficulty: strings.TrimSpace(c.Query("difficulty")),
		Skills:     services.SplitCSV(c.Query("skills")),
		Search:     strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, projects)
}

// GET /api/projects/trending/popular
func (h *ProjectHandler) Trending(c *gin.Context) {
	projects, err := h.svc.Trending(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, projects)
}

// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.svc.Get(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, project)
}

// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var body createProjectRequest
	if !bindAndValidate(c, &body) {
		return
	}

	project, err := h.svc.Create(requestContext(c), currentUserID(c), services.CreateProjectInput{
		Title:             body.Title,
		Description:       body.Description,
		Domain:            body.Domain,
		Difficulty:        body.Difficulty,
		SkillsRequired:    body.SkillsRequired,
		EstimatedDuration: body.EstimatedDuration,
		Tags:              body.Tags,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, project)
}

// POST /api/projects/:id/save
func (h *ProjectHandler) ToggleSave(c *gin.Context) {
	saved, err := h.svc.ToggleSave(requestContext(c), currentUserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"saved": saved})
}
