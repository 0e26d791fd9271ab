package testutil

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/collabhub/internal/api"
	"github.com/charlesng35/collabhub/internal/app"
	iauth "github.com/charlesng35/collabhub/internal/auth"
	"github.com/charlesng35/collabhub/internal/cache"
	sharedtestutil "github.com/charlesng35/collabhub/internal/database/testutil"
	"github.com/charlesng35/collabhub/internal/ideas"
	"github.com/charlesng35/collabhub/internal/models"
	"github.com/charlesng35/collabhub/pkg/crypto"
	"github.com/charlesng35/collabhub/pkg/response"
)

// Env encapsulates a fully-wired API instance backed by an in-memory database for handler tests.
type Env struct {
	T      *testing.T
	DB     *gorm.DB
	Router *gin.Engine
	JWT    *iauth.JWTService
	Config *app.Config
}

// EnvOption adjusts the configuration or router before the Env is built.
type EnvOption func(cfg *app.Config, opts *[]api.Option)

// WithConfig mutates the default test configuration.
func WithConfig(fn func(cfg *app.Config)) EnvOption {
	return func(cfg *app.Config, _ *[]api.Option) {
		fn(cfg)
	}
}

// WithRouterOptions forwards extra options to api.NewRouter.
func WithRouterOptions(extra ...api.Option) EnvOption {
	return func(_ *app.Config, opts *[]api.Option) {
		*opts = append(*opts, extra...)
	}
}

// NewEnv provisions a fresh handler test environment with migrations applied.
func NewEnv(t *testing.T, envOpts ...EnvOption) *Env {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := sharedtestutil.MustOpenTestDB(t, sharedtestutil.WithAutoMigrate())

	cfg := &app.Config{
		Auth: app.AuthConfig{
			JWT: app.JWTSettings{
				Secret: "test-suite-super-secret-key-32-bytes!!",
				Issuer: "test-suite",
				TTL:    time.Hour,
			},
		},
		Teams: app.TeamsConfig{DefaultMaxMembers: models.DefaultMaxMembers},
		Monitoring: app.MonitoringConfig{
			Prometheus: app.PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
			Health:     app.HealthConfig{Enabled: true, Timeout: time.Second},
		},
	}

	routerOpts := []api.Option{api.WithIdeaGenerator(ideas.NewGenerator(rand.New(rand.NewSource(7))))}
	for _, opt := range envOpts {
		opt(cfg, &routerOpts)
	}

	jwtSvc, err := iauth.NewJWTService(cfg.Auth.JWTServiceConfig())
	require.NoError(t, err)

	router, err := api.NewRouter(db, jwtSvc, cfg, cache.NewDatabaseStore(db), routerOpts...)
	require.NoError(t, err)

	return &Env{
		T:      t,
		DB:     db,
		Router: router,
		JWT:    jwtSvc,
		Config: cfg,
	}
}

// CreateUser inserts a user with the given name and skills and returns it with a signed token.
func (e *Env) CreateUser(name string, skills ...string) (*models.User, string) {
	e.T.Helper()

	hashed, err := crypto.HashPassword("password123")
	require.NoError(e.T, err)

	if skills == nil {
		skills = []string{}
	}
	user := &models.User{
		Name:         name,
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: hashed,
		Skills:       skills,
		Interests:    []string{},
		Availability: true,
	}
	require.NoError(e.T, e.DB.Create(user).Error)

	return user, e.Token(user.ID)
}

// Token signs an access token for the user id.
func (e *Env) Token(userID string) string {
	e.T.Helper()
	token, err := e.JWT.Sign(userID)
	require.NoError(e.T, err)
	return token
}

// APIResponse represents the canonical API envelope returned by handlers.
type APIResponse struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Error   *response.ErrorInfo `json:"error"`
}

// DecodeResponse parses the standard API response object from a recorder.
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// DecodeInto unmarshals the data payload into the provided destination.
func DecodeInto[T any](t *testing.T, raw json.RawMessage, dest *T) {
	t.Helper()
	if dest == nil {
		t.Fatal("destination must not be nil")
	}
	require.NoError(t, json.Unmarshal(raw, dest))
}

// Request executes an HTTP request against the test router, applying JSON encoding and auth headers automatically.
func (e *Env) Request(method, path string, body any, token string) *httptest.ResponseRecorder {
	e.T.Helper()

	var buf *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.T, err)
		buf = bytes.NewBuffer(data)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(e.T, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}
