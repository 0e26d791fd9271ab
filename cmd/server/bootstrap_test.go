package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/charlesng35/collabhub/internal/app"
	"github.com/charlesng35/collabhub/internal/models"
)

func testConfig(t *testing.T) *app.Config {
	t.Helper()

	cfg := &app.Config{}
	cfg.Database.Driver = "sqlite"
	cfg.Database.Path = filepath.Join(t.TempDir(), "collabhub.sqlite")
	cfg.Auth.JWT.Secret = "bootstrap-test-secret-with-enough-bytes"
	cfg.Auth.JWT.TTL = time.Hour
	cfg.Teams.DefaultMaxMembers = models.DefaultMaxMembers
	cfg.Monitoring.Health.Enabled = true
	return cfg
}

func TestConvertDatabaseConfig(t *testing.T) {
	cfg := &app.Config{}
	cfg.Database.Driver = " PostgreSQL "
	cfg.Database.SlowQueryThreshold = time.Second
	cfg.Database.Postgres = app.DBAuthConfig{
		Host:     " db.internal ",
		Port:     5432,
		Database: "collabhub",
		Username: "api",
		Password: " secret ",
		Options:  map[string]string{"sslmode": "require"},
	}

	dbCfg := convertDatabaseConfig(cfg)
	require.Equal(t, "postgres", dbCfg.Driver)
	require.Equal(t, "db.internal", dbCfg.Host)
	require.Equal(t, 5432, dbCfg.Port)
	require.Equal(t, "collabhub", dbCfg.Name)
	require.Equal(t, "api", dbCfg.User)
	require.Equal(t, " secret ", dbCfg.Password)
	require.Equal(t, "require", dbCfg.Options["sslmode"])
	require.Equal(t, time.Second, dbCfg.SlowQueryThreshold)

	cfg.Database.Driver = "mariadb"
	cfg.Database.MySQL = app.DBAuthConfig{Host: "mysql", Port: 3306}
	dbCfg = convertDatabaseConfig(cfg)
	require.Equal(t, "mysql", dbCfg.Driver)
	require.Equal(t, "mysql", dbCfg.Host)

	cfg.Database.Driver = ""
	cfg.Database.Path = " ./data/db.sqlite "
	dbCfg = convertDatabaseConfig(cfg)
	require.Equal(t, "sqlite", dbCfg.Driver)
	require.Equal(t, "./data/db.sqlite", dbCfg.Path)
	require.Empty(t, dbCfg.Host)

	cfg.Database.Driver = "oracle"
	require.Equal(t, "oracle", convertDatabaseConfig(cfg).Driver)
}

func TestBootstrapRuntimeServesRequests(t *testing.T) {
	cfg := testConfig(t)
	cfg.Maintenance = app.MaintenanceConfig{
		Enabled:            true,
		ReconcileSchedule:  "@hourly",
		CacheSchedule:      "*/15 * * * *",
		AuditSchedule:      "@daily",
		AuditRetentionDays: 30,
	}

	stack, err := bootstrapRuntime(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, stack.Router)
	require.NotNil(t, stack.Cleaner)
	require.NotNil(t, stack.RateStore)
	require.Nil(t, stack.Redis)

	w := httptest.NewRecorder()
	stack.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stack.Shutdown(ctx, zap.NewNop())
	require.Nil(t, stack.DB)
	require.Nil(t, stack.Cleaner)

	// Second shutdown is a no-op.
	stack.Shutdown(ctx, zap.NewNop())
}

func TestBootstrapRuntimeFallsBackWhenRedisIsDown(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Redis.Enabled = true
	cfg.Cache.Redis.Address = "127.0.0.1:1"
	cfg.Cache.Redis.Timeout = 200 * time.Millisecond

	stack, err := bootstrapRuntime(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { stack.Shutdown(context.Background(), zap.NewNop()) })

	require.Nil(t, stack.Redis)
	require.NotNil(t, stack.Cache)
	require.Nil(t, stack.Cleaner)
}

func TestBootstrapRuntimeRejectsUnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "oracle"

	_, err := bootstrapRuntime(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
}

func TestLoadApplicationConfig(t *testing.T) {
	_, err := loadApplicationConfig(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server:\n  port: 6100\n"), 0o600))

	cfg, err := loadApplicationConfig(file)
	require.NoError(t, err)
	require.Equal(t, 6100, cfg.Server.Port)

	cfg, err = loadApplicationConfig(dir)
	require.NoError(t, err)
	require.Equal(t, 6100, cfg.Server.Port)
}

func TestShutdownTimeout(t *testing.T) {
	cfg := &app.Config{}
	require.Equal(t, defaultShutdownTimeout, shutdownTimeout(cfg))
	cfg.Server.ShutdownTimeout = time.Second
	require.Equal(t, time.Second, shutdownTimeout(cfg))
}
