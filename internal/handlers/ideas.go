package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/collabhub/internal/ideas"
	"github.com/charlesng35/collabhub/pkg/response"
)

type IdeaHandler struct {
	generator *ideas.Generator
}

type curatedIdeasRequest struct {
	Domains    []string `json:"domains" validate:"omitempty,max=12,dive,max=64"`
	Difficulty string   `json:"difficulty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
}

func (r *curatedIdeasRequest) normalize() {
	r.Domains = trimAll(r.Domains)
	r.Difficulty = strings.TrimSpace(r.Difficulty)
}

type suggestIdeasRequest struct {
	Interests  string `json:"interests" validate:"max=100"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
}

func (r *suggestIdeasRequest) normalize() {
	r.Interests = strings.TrimSpace(r.Interests)
	r.Difficulty = strings.TrimSpace(r.Difficulty)
}

func NewIdeaHandler(generator *ideas.Generator) *IdeaHandler {
	if generator == nil {
		generator = ideas.NewGenerator(nil)
	}
	return &IdeaHandler{generator: generator}
}

// GET /api/ideas/domains
func (h *IdeaHandler) Domains(c *gin.Context) {
	response.Success(c, http.StatusOK, ideas.Domains)
}

// POST /api/ideas/curated
func (h *IdeaHandler) Curated(c *gin.Context) {
	var body curatedIdeasRequest
	if !bindOptionalJSON(c, &body) {
		return
	}
	response.Success(c, http.StatusOK, h.generator.Curated(body.Domains, body.Difficulty))
}

// POST /api/ideas/suggest
func (h *IdeaHandler) Suggest(c *gin.Context) {
	var body suggestIdeasRequest
	if !bindOptionalJSON(c, &body) {
		return
	}
	response.Success(c, http.StatusOK, h.generator.Suggest(body.Interests, body.Difficulty))
}
