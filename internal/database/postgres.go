package database

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultPostgresPort = 5432

func openPostgres(cfg Config) (*gorm.DB, error) {
	dsn, err := buildPostgresDSN(cfg)
	if err != nil {
		return nil, err
	}
	return gorm.Open(postgres.Open(dsn), gormConfig(cfg))
}

// buildPostgresDSN renders a keyword/value connection string and checks it
// with the pgx parser so malformed settings fail before the first dial.
func buildPostgresDSN(cfg Config) (string, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		if cfg.User == "" || cfg.Name == "" {
			return "", errors.New("postgres configuration requires user and database name")
		}

		host := cfg.Host
		if host == "" {
			host = "localhost"
		}
		port := cfg.Port
		if port == 0 {
			port = defaultPostgresPort
		}

		params := []string{
			"host=" + quotePGValue(host),
			"port=" + strconv.Itoa(port),
			"user=" + quotePGValue(cfg.User),
			"dbname=" + quotePGValue(cfg.Name),
		}
		if cfg.Password != "" {
			params = append(params, "password="+quotePGValue(cfg.Password))
		}

		options := map[string]string{"sslmode": "disable"}
		for key, value := range cfg.Options {
			options[key] = value
		}
		keys := make([]string, 0, len(options))
		for key := range options {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			params = append(params, key+"="+quotePGValue(options[key]))
		}
		dsn = strings.Join(params, " ")
	}

	if _, err := pgconn.ParseConfig(dsn); err != nil {
		return "", fmt.Errorf("postgres: invalid dsn: %w", err)
	}
	return dsn, nil
}

// quotePGValue applies libpq quoting: values with spaces, quotes or
// backslashes are wrapped in single quotes with those characters escaped.
func quotePGValue(value string) string {
	if value != "" && !strings.ContainsAny(value, " '\\") {
		return value
	}
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(value)
	return "'" + escaped + "'"
}
