package models

import (
	"gorm.io/datatypes"
)

// User is a platform member who can publish projects and join teams.
type User struct {
	BaseModel

	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email,omitempty"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`

	Year   string `json:"year"`
	Branch string `json:"branch"`

	Skills       datatypes.JSONSlice[string] `json:"skills"`
	Interests    datatypes.JSONSlice[string] `json:"interests"`
	Availability bool                        `gorm:"not null" json:"availability"`

	Github   string `json:"github"`
	Linkedin string `json:"linkedin"`

	SavedProjects []Project `gorm:"many2many:user_saved_projects;" json:"savedProjects,omitempty"`
	Teams         []Team    `gorm:"many2many:user_teams;" json:"teams,omitempty"`
}

// Public returns a copy of the user safe for directory listings.
func (u User) Public() User {
	u.Email = ""
	u.PasswordHash = ""
	return u
}

// UserTeam is the backlink from a user to the teams they belong to.
type UserTeam struct {
	UserID string `gorm:"primaryKey;type:uuid"`
	TeamID string `gorm:"primaryKey;type:uuid"`
}

func (UserTeam) TableName() string { return "user_teams" }

// UserSavedProject records a bookmarked project.
type UserSavedProject struct {
	UserID    string `gorm:"primaryKey;type:uuid"`
	ProjectID string `gorm:"primaryKey;type:uuid"`
}

func (UserSavedProject) TableName() string { return "user_saved_projects" }
