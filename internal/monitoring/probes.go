package monitoring

import (
	"bytes"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/charlesng35/collabhub/internal/cache"
	"github.com/charlesng35/collabhub/internal/database"
)

const cacheProbeKey = "health:probe"

// DatabaseProbe pings the primary database.
func DatabaseProbe(db *gorm.DB) Probe {
	return func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}
}

// CacheProbe round-trips a short-lived marker through the cache store.
func CacheProbe(store cache.Store) Probe {
	return func(ctx context.Context) error {
		if store == nil {
			return errors.New("cache store not configured")
		}
		marker := []byte(time.Now().UTC().Format(time.RFC3339Nano))
		if err := store.Set(ctx, cacheProbeKey, marker, 30*time.Second); err != nil {
			return err
		}
		value, ok, err := store.Get(ctx, cacheProbeKey)
		if err != nil {
			return err
		}
		if !ok || !bytes.Equal(value, marker) {
			return errors.New("cache probe value mismatch")
		}
		return nil
	}
}
