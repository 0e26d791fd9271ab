package models

import (
	"gorm.io/datatypes"
)

// Project domains accepted by the catalogue.
const (
	DomainWeb         = "Web"
	DomainAI          = "AI"
	DomainApp         = "App"
	DomainIoT         = "IoT"
	DomainCloud       = "Cloud"
	DomainDataScience = "Data Science"
	DomainBlockchain  = "Blockchain"
	DomainGameDev     = "Game Dev"
)

// Project difficulty levels.
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// ProjectDomains lists the valid project domains in display order.
var ProjectDomains = []string{
	DomainWeb, DomainAI, DomainApp, DomainIoT, DomainCloud, DomainDataScience, DomainBlockchain, DomainGameDev,
}

// Difficulties lists the valid difficulty levels.
var Difficulties = []string{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// Project is a published research idea teams can form around.
type Project struct {
	BaseModel

	Title             string                      `gorm:"not null" json:"title"`
	Description       string                      `gorm:"type:text;not null" json:"description"`
	Domain            string                      `gorm:"not null;index" json:"domain"`
	Difficulty        string                      `gorm:"not null;index" json:"difficulty"`
	SkillsRequired    datatypes.JSONSlice[string] `json:"skillsRequired"`
	EstimatedDuration string                      `json:"estimatedDuration"`
	Tags              datatypes.JSONSlice[string] `json:"tags"`
	IsActive          bool                        `gorm:"not null;index" json:"isActive"`

	CreatedByID string `gorm:"type:uuid;index" json:"createdById"`
	CreatedBy   *User  `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
}
