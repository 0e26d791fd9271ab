package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/collabhub/internal/handlers/testutil"
)

type memberPayload struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type joinRequestPayload struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type roleSlotPayload struct {
	Role   string   `json:"role"`
	Skills []string `json:"skills"`
	Filled bool     `json:"filled"`
}

type teamPayload struct {
	ID           string               `json:"id"`
	TeamName     string               `json:"teamName"`
	ProjectID    string               `json:"projectId"`
	MaxMembers   int                  `json:"maxMembers"`
	Status       string               `json:"status"`
	CreatedByID  string               `json:"createdById"`
	Members      []memberPayload      `json:"members"`
	RolesNeeded  []roleSlotPayload    `json:"rolesNeeded"`
	JoinRequests []joinRequestPayload `json:"joinRequests"`
	Project      *projectPayload      `json:"project"`
}

type projectPayload struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Domain         string   `json:"domain"`
	Difficulty     string   `json:"difficulty"`
	SkillsRequired []string `json:"skillsRequired"`
	Tags           []string `json:"tags"`
	IsActive       bool     `json:"isActive"`
	CreatedByID    string   `json:"createdById"`
	CreatedBy      *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"createdBy"`
}

type userPayload struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	PasswordHash string   `json:"passwordHash"`
	Skills       []string `json:"skills"`
	Interests    []string `json:"interests"`
	Availability bool     `json:"availability"`
	Branch       string   `json:"branch"`
	Teams        []struct {
		ID       string `json:"id"`
		TeamName string `json:"teamName"`
		Status   string `json:"status"`
	} `json:"teams"`
}

type messagePayload struct {
	Message string `json:"message"`
}

func createProject(t *testing.T, env *testutil.Env, token string, body map[string]any) projectPayload {
	t.Helper()

	payload := map[string]any{
		"title":          "Edge inference",
		"description":    "Running compact vision models on microcontrollers",
		"domain":         "AI",
		"difficulty":     "Intermediate",
		"skillsRequired": []string{"Python", "TinyML"},
	}
	for k, v := range body {
		payload[k] = v
	}

	w := env.Request(http.MethodPost, "/api/projects", payload, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var project projectPayload
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &project)
	return project
}

func createTeam(t *testing.T, env *testutil.Env, token, projectID string, body map[string]any) teamPayload {
	t.Helper()

	payload := map[string]any{
		"teamName":    "Vision crew",
		"project":     projectID,
		"description": "Building the first prototype together",
		"rolesNeeded": []map[string]any{
			{"role": "ML Engineer", "skills": []string{"Python"}},
		},
	}
	for k, v := range body {
		payload[k] = v
	}

	w := env.Request(http.MethodPost, "/api/teams", payload, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var team teamPayload
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &team)
	return team
}

func getTeam(t *testing.T, env *testutil.Env, id string) teamPayload {
	t.Helper()

	w := env.Request(http.MethodGet, "/api/teams/"+id, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var team teamPayload
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &team)
	return team
}

func requireError(t *testing.T, env *testutil.Env, method, path string, body any, token string, status int, code string) testutil.APIResponse {
	t.Helper()

	w := env.Request(method, path, body, token)
	require.Equal(t, status, w.Code, w.Body.String())
	resp := testutil.DecodeResponse(t, w)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	require.Equal(t, code, resp.Error.Code)
	return resp
}

func requireMessage(t *testing.T, env *testutil.Env, method, path string, token, expected string) {
	t.Helper()

	w := env.Request(method, path, nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var msg messagePayload
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &msg)
	require.Equal(t, expected, msg.Message)
}
