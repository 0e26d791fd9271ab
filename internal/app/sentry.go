package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
)

const sentryFlushTimeout = 2 * time.Second

// InitSentry configures the global Sentry hub. It reports whether reporting is
// enabled and returns a flush function to call during shutdown.
func InitSentry(cfg SentryConfig) (bool, func(), error) {
	noop := func() {}
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return false, noop, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		AttachStacktrace: true,
		TracesSampleRate: cfg.TracesSampleRate,
	})
	if err != nil {
		return false, noop, fmt.Errorf("sentry: init: %w", err)
	}

	return true, func() { sentry.Flush(sentryFlushTimeout) }, nil
}
