package services

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

// normaliseList trims entries and drops blanks and duplicates while keeping order.
func normaliseList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, exists := seen[value]; exists {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

// SplitCSV turns a comma separated query value into a normalised list.
func SplitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return normaliseList(strings.Split(raw, ","))
}

func containsFold(values []string, target string) bool {
	target = strings.TrimSpace(target)
	if target == "" {
		return false
	}
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), target) {
			return true
		}
	}
	return false
}

// intersects reports whether any wanted value appears in values, ignoring case.
func intersects(values, wanted []string) bool {
	for _, candidate := range wanted {
		if containsFold(values, candidate) {
			return true
		}
	}
	return false
}

func selectColumns(columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Select(columns)
	}
}

func orderBy(order string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(order)
	}
}

// userSummaryColumns are the user fields embedded in team and project payloads.
var userSummaryColumns = []string{"id", "name", "skills"}
