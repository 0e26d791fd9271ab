package models

import (
	"time"

	"gorm.io/datatypes"
)

// TeamStatus tracks where a team is in its lifecycle.
type TeamStatus string

const (
	TeamStatusOpen       TeamStatus = "Open"
	TeamStatusInProgress TeamStatus = "In Progress"
	TeamStatusCompleted  TeamStatus = "Completed"
	TeamStatusClosed     TeamStatus = "Closed"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s TeamStatus) Valid() bool {
	switch s {
	case TeamStatusOpen, TeamStatusInProgress, TeamStatusCompleted, TeamStatusClosed:
		return true
	}
	return false
}

const (
	RoleTeamLead = "Team Lead"
	RoleMember   = "Member"

	DefaultMaxMembers = 5
)

// Team groups users working on a project.
type Team struct {
	BaseModel

	TeamName    string   `gorm:"not null" json:"teamName"`
	ProjectID   string   `gorm:"type:uuid;not null;index" json:"projectId"`
	Project     *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Description string   `gorm:"type:text;not null" json:"description"`
	MaxMembers  int      `gorm:"not null" json:"maxMembers"`

	CreatedByID string     `gorm:"type:uuid;not null;index" json:"createdById"`
	CreatedBy   *User      `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	Status      TeamStatus `gorm:"type:varchar(32);not null;index" json:"status"`

	Members      []TeamMember  `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"members"`
	RolesNeeded  []RoleSlot    `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"rolesNeeded"`
	JoinRequests []JoinRequest `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"joinRequests"`
}

// HasMember reports whether the user already belongs to the team.
func (t *Team) HasMember(userID string) bool {
	for _, member := range t.Members {
		if member.UserID == userID {
			return true
		}
	}
	return false
}

// HasPendingRequest reports whether the user already asked to join.
func (t *Team) HasPendingRequest(userID string) bool {
	for _, request := range t.JoinRequests {
		if request.UserID == userID {
			return true
		}
	}
	return false
}

// TeamMember is one seat in a team's ordered member list.
type TeamMember struct {
	BaseModel

	TeamID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_team_member" json:"-"`
	UserID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_team_member" json:"userId"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role     string    `gorm:"not null" json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
	Position int       `gorm:"not null" json:"-"`
}

// RoleSlot describes a role a team is still looking to fill.
type RoleSlot struct {
	BaseModel

	TeamID   string                      `gorm:"type:uuid;not null;index" json:"-"`
	Role     string                      `gorm:"not null" json:"role"`
	Skills   datatypes.JSONSlice[string] `json:"skills"`
	Filled   bool                        `gorm:"not null" json:"filled"`
	Position int                         `gorm:"not null" json:"-"`
}

func (RoleSlot) TableName() string { return "team_role_slots" }

// JoinRequest is a pending application by a user to join a team.
type JoinRequest struct {
	BaseModel

	TeamID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_team_join_request" json:"-"`
	UserID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_team_join_request" json:"userId"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Message     string    `gorm:"type:text" json:"message"`
	RequestedAt time.Time `gorm:"index" json:"requestedAt"`
}
