package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/collabhub/internal/services"
	"github.com/charlesng35/collabhub/pkg/response"
)

type UserHandler struct {
	service *services.UserService
}

type updateProfileRequest struct {
	Name         *string   `json:"name" validate:"omitempty,notblank,min=2,max=100"`
	Year         *string   `json:"year" validate:"omitempty,max=32"`
	Branch       *string   `json:"branch" validate:"omitempty,max=100"`
	Skills       *[]string `json:"skills" validate:"omitempty,dive,max=64"`
	Interests    *[]string `json:"interests" validate:"omitempty,dive,max=64"`
	Availability *bool     `json:"availability"`
	Github       *string   `json:"github" validate:"omitempty,max=255"`
	Linkedin     *string   `json:"linkedin" validate:"omitempty,max=255"`
}

func (r *updateProfileRequest) normalize() {
	for _, field := range []*string{r.Name, r.Year, r.Branch, r.Github, r.Linkedin} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
	if r.Skills != nil {
		skills := trimAll(*r.Skills)
		r.Skills = &skills
	}
	if r.Interests != nil {
		interests := trimAll(*r.Interests)
		r.Interests = &interests
	}
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(requestContext(c), services.UserFilters{
		Skills:       services.SplitCSV(c.Query("skills")),
		Availability: parseBoolQuery(c, "availability"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.service.Profile(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var body updateProfileRequest
	if !bindAndValidate(c, &body) {
		return
	}

	user, err := h.service.UpdateProfile(requestContext(c), currentUserID(c), services.UpdateProfileInput{
		Name:         body.Name,
		Year:         body.Year,
		Branch:       body.Branch,
		Skills:       body.Skills,
		Interests:    body.Interests,
		Availability: body.Availability,
		Github:       body.Github,
		Linkedin:     body.Linkedin,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// GET /api/users/recommendations/projects
func (h *UserHandler) Recommendations(c *gin.Context) {
	projects, err := h.service.Recommendations(requestContext(c), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, projects)
}
