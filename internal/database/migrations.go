package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/charlesng35/collabhub/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("nil database handle")
	}

	if err := db.SetupJoinTable(&models.User{}, "Teams", &models.UserTeam{}); err != nil {
		return fmt.Errorf("setup user teams join table: %w", err)
	}
	if err := db.SetupJoinTable(&models.User{}, "SavedProjects", &models.UserSavedProject{}); err != nil {
		return fmt.Errorf("setup saved projects join table: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Team{},
		&models.TeamMember{},
		&models.RoleSlot{},
		&models.JoinRequest{},
		&models.UserTeam{},
		&models.UserSavedProject{},
		&models.AuditLog{},
		&models.CacheEntry{},
	)
}
