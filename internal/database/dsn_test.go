package database

import (
	"testing"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestBuildPostgresDSNDefaults(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{User: "collabhub", Name: "collabhub"})
	require.NoError(t, err)
	require.Equal(t, "host=localhost port=5432 user=collabhub dbname=collabhub sslmode=disable", dsn)
}

func TestBuildPostgresDSNWithOptions(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{
		User:     "user",
		Name:     "research",
		Host:     "db.example.com",
		Port:     6543,
		Password: "pass",
		Options: map[string]string{
			"sslmode":     "require",
			"search_path": "public",
		},
	})
	require.NoError(t, err)

	for _, part := range []string{"host=db.example.com", "port=6543", "password=pass", "sslmode=require", "search_path=public"} {
		require.Contains(t, dsn, part)
	}
}

func TestBuildPostgresDSNQuotesAwkwardPasswords(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{User: "user", Name: "research", Password: `it's a \secret`})
	require.NoError(t, err)
	require.Contains(t, dsn, `password='it\'s a \\secret'`)

	parsed, err := pgconn.ParseConfig(dsn)
	require.NoError(t, err)
	require.Equal(t, `it's a \secret`, parsed.Password)
	require.Equal(t, "research", parsed.Database)
	require.Equal(t, uint16(5432), parsed.Port)
}

func TestBuildPostgresDSNPrefersOverride(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{DSN: "postgres://u@h/db"})
	require.NoError(t, err)
	require.Equal(t, "postgres://u@h/db", dsn)

	_, err = buildPostgresDSN(Config{DSN: "postgres://u@h:notaport/db"})
	require.Error(t, err)
}

func TestBuildPostgresDSNRequiresUserAndName(t *testing.T) {
	_, err := buildPostgresDSN(Config{})
	require.Error(t, err)
}

func TestBuildMySQLDSNDefaults(t *testing.T) {
	dsn, err := buildMySQLDSN(Config{User: "collabhub", Name: "collabhub"})
	require.NoError(t, err)
	require.Contains(t, dsn, "collabhub@tcp(127.0.0.1:3306)/collabhub?")
	require.Contains(t, dsn, "parseTime=true")
	require.Contains(t, dsn, "charset=utf8mb4")

	parsed, err := mysqldriver.ParseDSN(dsn)
	require.NoError(t, err)
	require.True(t, parsed.ParseTime)
	require.Equal(t, time.UTC, parsed.Loc)
}

func TestBuildMySQLDSNWithOptions(t *testing.T) {
	dsn, err := buildMySQLDSN(Config{
		User:     "user",
		Password: "secret",
		Name:     "research",
		Host:     "db.example.com",
		Port:     3307,
		Options:  map[string]string{"timeout": "5s"},
	})
	require.NoError(t, err)
	require.Contains(t, dsn, "user:secret@tcp(db.example.com:3307)/research?")

	parsed, err := mysqldriver.ParseDSN(dsn)
	require.NoError(t, err)
	require.Equal(t, "db.example.com:3307", parsed.Addr)
	require.Equal(t, 5*time.Second, parsed.Timeout)
}

func TestBuildMySQLDSNValidatesOverride(t *testing.T) {
	dsn, err := buildMySQLDSN(Config{DSN: "user:pw@tcp(db:3306)/research"})
	require.NoError(t, err)
	require.Equal(t, "user:pw@tcp(db:3306)/research", dsn)

	_, err = buildMySQLDSN(Config{DSN: "not a dsn"})
	require.Error(t, err)
}

func TestBuildMySQLDSNRequiresUserAndName(t *testing.T) {
	_, err := buildMySQLDSN(Config{Host: "localhost"})
	require.Error(t, err)
}
