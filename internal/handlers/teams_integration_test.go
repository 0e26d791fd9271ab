package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/charlesng35/collabhub/internal/app"
	"github.com/charlesng35/collabhub/internal/handlers/testutil"
	"github.com/charlesng35/collabhub/internal/models"
)

func TestTeamJoinWorkflow(t *testing.T) {
	env := testutil.NewEnv(t)

	lead, leadToken := env.CreateUser("Lead")
	applicant, applicantToken := env.CreateUser("Applicant")
	_, strangerToken := env.CreateUser("Stranger")

	project := createProject(t, env, leadToken, nil)
	team := createTeam(t, env, leadToken, project.ID, map[string]any{
		"rolesNeeded": []map[string]any{
			{"role": "ML Engineer", "skills": []string{"Python"}},
			{"role": "   ", "skills": []string{"Ignored"}},
		},
	})

	require.Equal(t, "Vision crew", team.TeamName)
	require.Equal(t, string(models.TeamStatusOpen), team.Status)
	require.Equal(t, models.DefaultMaxMembers, team.MaxMembers)
	require.Equal(t, lead.ID, team.CreatedByID)
	require.Equal(t, []memberPayload{{UserID: lead.ID, Role: models.RoleTeamLead}}, team.Members)
	require.Len(t, team.RolesNeeded, 1)
	require.Equal(t, "ML Engineer", team.RolesNeeded[0].Role)
	require.NotNil(t, team.Project)
	require.Equal(t, project.ID, team.Project.ID)

	teamPath := "/api/teams/" + team.ID

	requireError(t, env, http.MethodPost, teamPath+"/join", nil, "", http.StatusUnauthorized, "UNAUTHORIZED")
	requireError(t, env, http.MethodPost, teamPath+"/join", nil, leadToken, http.StatusBadRequest, "ALREADY_MEMBER")

	w := env.Request(http.MethodPost, teamPath+"/join", map[string]any{"message": "I know PyTorch"}, applicantToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var msg messagePayload
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &msg)
	require.Equal(t, "Join request sent successfully", msg.Message)

	resp := requireError(t, env, http.MethodPost, teamPath+"/join", nil, applicantToken, http.StatusBadRequest, "JOIN_REQUEST_EXISTS")
	require.Equal(t, "Join request already sent", resp.Error.Message)

	current := getTeam(t, env, team.ID)
	require.Len(t, current.JoinRequests, 1)
	request := current.JoinRequests[0]
	require.Equal(t, applicant.ID, request.UserID)
	require.Equal(t, "I know PyTorch", request.Message)

	resolvePath := teamPath + "/requests/" + request.ID
	resp = requireError(t, env, http.MethodPost, resolvePath+"/accept", nil, strangerToken, http.StatusForbidden, "FORBIDDEN")
	require.Equal(t, "Not authorized", resp.Error.Message)
	requireError(t, env, http.MethodPost, resolvePath+"/approve", nil, leadToken, http.StatusBadRequest, "INVALID_JOIN_ACTION")
	requireError(t, env, http.MethodPost, teamPath+"/requests/"+uuid.NewString()+"/accept", nil, leadToken, http.StatusNotFound, "JOIN_REQUEST_NOT_FOUND")

	requireMessage(t, env, http.MethodPost, resolvePath+"/accept", leadToken, "Join request accepted successfully")

	current = getTeam(t, env, team.ID)
	require.Empty(t, current.JoinRequests)
	require.Equal(t, []memberPayload{
		{UserID: lead.ID, Role: models.RoleTeamLead},
		{UserID: applicant.ID, Role: models.RoleMember},
	}, current.Members)

	w = env.Request(http.MethodGet, "/api/users/"+applicant.ID, nil, applicantToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var profile userPayload
	testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &profile)
	require.Len(t, profile.Teams, 1)
	require.Equal(t, team.ID, profile.Teams[0].ID)
	require.Equal(t, "Vision crew", profile.Teams[0].TeamName)

	requireError(t, env, http.MethodPost, resolvePath+"/accept", nil, leadToken, http.StatusNotFound, "JOIN_REQUEST_NOT_FOUND")
	requireError(t, env, http.MethodPost, teamPath+"/join", nil, applicantToken, http.StatusBadRequest, "ALREADY_MEMBER")
}

func TestTeamRejectJoinRequest(t *testing.T) {
	env := testutil.NewEnv(t)

	lead, leadToken := env.CreateUser("Lead")
	_, applicantToken := env.CreateUser("Applicant")

	project := createProject(t, env, leadToken, nil)
	team := createTeam(t, env, leadToken, project.ID, nil)

	w := env.Request(http.MethodPost, "/api/teams/"+team.ID+"/join", nil, applicantToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	request := getTeam(t, env, team.ID).JoinRequests[0]
	requireMessage(t, env, http.MethodPost, "/api/teams/"+team.ID+"/requests/"+request.ID+"/reject", leadToken, "Join request rejected successfully")

	current := getTeam(t, env, team.ID)
	require.Empty(t, current.JoinRequests)
	require.Equal(t, []memberPayload{{UserID: lead.ID, Role: models.RoleTeamLead}}, current.Members)

	// A rejected applicant may ask again.
	w = env.Request(http.MethodPost, "/api/teams/"+team.ID+"/join", nil, applicantToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestTeamCapacityIsAdvisoryByDefault(t *testing.T) {
	env := testutil.NewEnv(t)

	_, leadToken := env.CreateUser("Lead")
	project := createProject(t, env, leadToken, nil)
	team := createTeam(t, env, leadToken, project.ID, map[string]any{"maxMembers": 3})
	require.Equal(t, 3, team.MaxMembers)

	for i := 0; i < 3; i++ {
		_, token := env.CreateUser("Applicant")
		w := env.Request(http.MethodPost, "/api/teams/"+team.ID+"/join", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	for _, request := range getTeam(t, env, team.ID).JoinRequests {
		requireMessage(t, env, http.MethodPost, "/api/teams/"+team.ID+"/requests/"+request.ID+"/accept", leadToken, "Join request accepted successfully")
	}

	require.Len(t, getTeam(t, env, team.ID).Members, 4)
}

func TestTeamCapacityEnforcement(t *testing.T) {
	env := testutil.NewEnv(t, testutil.WithConfig(func(cfg *app.Config) {
		cfg.Teams.EnforceCapacity = true
	}))

	_, leadToken := env.CreateUser("Lead")
	project := createProject(t, env, leadToken, nil)
	team := createTeam(t, env, leadToken, project.ID, map[string]any{"maxMembers": 2})

	for i := 0; i < 2; i++ {
		_, token := env.CreateUser("Applicant")
		w := env.Request(http.MethodPost, "/api/teams/"+team.ID+"/join", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	requests := getTeam(t, env, team.ID).JoinRequests
	require.Len(t, requests, 2)
	requireMessage(t, env, http.MethodPost, "/api/teams/"+team.ID+"/requests/"+requests[0].ID+"/accept", leadToken, "Join request accepted successfully")
	requireError(t, env, http.MethodPost, "/api/teams/"+team.ID+"/requests/"+requests[1].ID+"/accept", nil, leadToken, http.StatusBadRequest, "TEAM_FULL")

	current := getTeam(t, env, team.ID)
	require.Len(t, current.Members, 2)
	require.Len(t, current.JoinRequests, 1)
}

func TestCreateTeamValidation(t *testing.T) {
	env := testutil.NewEnv(t)

	_, token := env.CreateUser("Lead")
	project := createProject(t, env, token, nil)

	valid := map[string]any{
		"teamName":    "Vision crew",
		"project":     project.ID,
		"description": "Building the first prototype together",
		"rolesNeeded": []any{},
	}
	with := func(key string, value any) map[string]any {
		out := map[string]any{}
		for k, v := range valid {
			out[k] = v
		}
		if value == nil {
			delete(out, key)
		} else {
			out[key] = value
		}
		return out
	}

	requireError(t, env, http.MethodPost, "/api/teams", valid, "", http.StatusUnauthorized, "UNAUTHORIZED")

	resp := requireError(t, env, http.MethodPost, "/api/teams", with("teamName", "  ab  "), token, http.StatusBadRequest, "VALIDATION_FAILED")
	require.Equal(t, "teamName", resp.Error.Errors[0].Field)

	resp = requireError(t, env, http.MethodPost, "/api/teams", with("description", "too short"), token, http.StatusBadRequest, "VALIDATION_FAILED")
	require.Equal(t, "description", resp.Error.Errors[0].Field)

	resp = requireError(t, env, http.MethodPost, "/api/teams", with("project", "not-an-id"), token, http.StatusBadRequest, "VALIDATION_FAILED")
	require.Equal(t, "project", resp.Error.Errors[0].Field)

	resp = requireError(t, env, http.MethodPost, "/api/teams", with("rolesNeeded", nil), token, http.StatusBadRequest, "VALIDATION_FAILED")
	require.Equal(t, "rolesNeeded", resp.Error.Errors[0].Field)

	resp = requireError(t, env, http.MethodPost, "/api/teams", with("project", uuid.NewString()), token, http.StatusBadRequest, "INVALID_PROJECT")
	require.Equal(t, "Project not found", resp.Error.Message)

	w := env.Request(http.MethodPost, "/api/teams", "{", token)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTeamLookupAndListing(t *testing.T) {
	env := testutil.NewEnv(t)

	_, token := env.CreateUser("Lead")
	project := createProject(t, env, token, nil)

	first := createTeam(t, env, token, project.ID, map[string]any{
		"teamName":    "Backend crew",
		"rolesNeeded": []map[string]any{{"role": "API dev", "skills": []string{"Go"}}},
	})
	second := createTeam(t, env, token, project.ID, map[string]any{
		"teamName":    "Frontend crew",
		"rolesNeeded": []map[string]any{{"role": "UI dev", "skills": []string{"React"}}},
	})
	require.NoError(t, env.DB.Model(&models.Team{}).Where("id = ?", first.ID).
		Update("status", models.TeamStatusInProgress).Error)

	requireError(t, env, http.MethodGet, "/api/teams/"+uuid.NewString(), nil, "", http.StatusNotFound, "TEAM_NOT_FOUND")

	list := func(query string) []teamPayload {
		w := env.Request(http.MethodGet, "/api/teams"+query, nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var teams []teamPayload
		testutil.DecodeInto(t, testutil.DecodeResponse(t, w).Data, &teams)
		return teams
	}

	all := list("")
	require.ElementsMatch(t, []string{first.ID, second.ID}, []string{all[0].ID, all[1].ID})

	open := list("?status=Open")
	require.Len(t, open, 1)
	require.Equal(t, second.ID, open[0].ID)

	goTeams := list("?skills=go,rust")
	require.Len(t, goTeams, 1)
	require.Equal(t, first.ID, goTeams[0].ID)
}
