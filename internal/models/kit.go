package models

import (
	"time"
)

// MasterKit represents a kit design for a club and season.
// Team/league/brand references are denormalized: the display name is stored
// alongside the optional entity ID.
type MasterKit struct {
	KitID      string    `gorm:"primaryKey;size:40" json:"kit_id"`
	Club       string    `gorm:"size:255;not null;index" json:"club"`
	Season     string    `gorm:"size:20;index" json:"season"`
	KitType    string    `gorm:"size:50" json:"kit_type"`
	Brand      string    `gorm:"size:100" json:"brand"`
	FrontPhoto string    `gorm:"size:500" json:"front_photo"`
	League     string    `gorm:"size:100" json:"league"`
	Design     string    `gorm:"size:100" json:"design"`
	Sponsor    string    `gorm:"size:100" json:"sponsor"`
	Gender     string    `gorm:"size:20" json:"gender"`
	TeamID     string    `gorm:"size:40;index" json:"team_id"`
	LeagueID   string    `gorm:"size:40;index" json:"league_id"`
	BrandID    string    `gorm:"size:40;index" json:"brand_id"`
	CreatedBy  string    `gorm:"size:40" json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for MasterKit model
func (MasterKit) TableName() string {
	return "master_kits"
}

// MasterKitCreateRequest is the payload for creating a master kit directly
type MasterKitCreateRequest struct {
	Club       string `json:"club" binding:"required"`
	Season     string `json:"season" binding:"required"`
	KitType    string `json:"kit_type" binding:"required"`
	Brand      string `json:"brand" binding:"required"`
	FrontPhoto string `json:"front_photo"`
	League     string `json:"league"`
	Design     string `json:"design"`
	Sponsor    string `json:"sponsor"`
	Gender     string `json:"gender"`
	TeamID     string `json:"team_id"`
	LeagueID   string `json:"league_id"`
	BrandID    string `json:"brand_id"`
}
