package models

import (
	"time"
)

// Default values stamped on the version auto-created with every new master kit.
const (
	DefaultVersionCompetition = "National Championship"
	DefaultVersionModel       = "Replica"
)

// Version represents a concrete retail/match variant of a MasterKit.
// Every MasterKit has at least one Version.
type Version struct {
	VersionID    string    `gorm:"primaryKey;size:40" json:"version_id"`
	KitID        string    `gorm:"size:40;not null;index" json:"kit_id"`
	Competition  string    `gorm:"size:100" json:"competition"`
	Model        string    `gorm:"size:50" json:"model"`
	SkuCode      string    `gorm:"size:100" json:"sku_code"`
	EanCode      string    `gorm:"size:100" json:"ean_code"`
	FrontPhoto   string    `gorm:"size:500" json:"front_photo"`
	BackPhoto    string    `gorm:"size:500" json:"back_photo"`
	MainPlayerID string    `gorm:"size:40" json:"main_player_id"`
	CreatedBy    string    `gorm:"size:40" json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for Version model
func (Version) TableName() string {
	return "versions"
}

// VersionCreateRequest is the payload for creating a version directly
type VersionCreateRequest struct {
	KitID        string `json:"kit_id" binding:"required"`
	Competition  string `json:"competition" binding:"required"`
	Model        string `json:"model" binding:"required"`
	SkuCode      string `json:"sku_code"`
	EanCode      string `json:"ean_code"`
	FrontPhoto   string `json:"front_photo"`
	BackPhoto    string `json:"back_photo"`
	MainPlayerID string `json:"main_player_id"`
}
