package models

import (
	"time"
)

// Review is a user's rating of a version (one per user per version)
type Review struct {
	ReviewID    string    `gorm:"primaryKey;size:40" json:"review_id"`
	VersionID   string    `gorm:"size:40;not null;index" json:"version_id"`
	UserID      string    `gorm:"size:40;not null;index" json:"user_id"`
	UserName    string    `gorm:"size:255" json:"user_name"`
	UserPicture string    `gorm:"size:500" json:"user_picture"`
	Rating      int       `gorm:"not null" json:"rating"`
	Comment     string    `gorm:"type:text" json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for Review model
func (Review) TableName() string {
	return "reviews"
}

// ReviewCreateRequest is the payload for POST /api/reviews
type ReviewCreateRequest struct {
	VersionID string `json:"version_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}
