package models

import (
	"time"
)

// Roles assigned to users. Moderators and admins can fast-path approvals.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User represents a collector account
type User struct {
	UserID            string    `gorm:"primaryKey;size:40" json:"user_id"`
	Email             string    `gorm:"uniqueIndex;not null" json:"email"`
	Name              string    `gorm:"size:255" json:"name"`
	Username          string    `gorm:"size:100;index" json:"username,omitempty"`
	Picture           string    `gorm:"size:500" json:"picture,omitempty"`
	Description       string    `gorm:"type:text" json:"description,omitempty"`
	CollectionPrivacy string    `gorm:"size:20;default:public" json:"collection_privacy,omitempty"`
	Role              string    `gorm:"size:20;default:user" json:"role"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// IsPrivileged reports whether the user can moderate proposals.
func (u *User) IsPrivileged() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}

// ProfileUpdateRequest is the payload for PUT /api/users/profile
type ProfileUpdateRequest struct {
	Username          *string `json:"username,omitempty"`
	Description       *string `json:"description,omitempty"`
	CollectionPrivacy *string `json:"collection_privacy,omitempty"`
	Picture           *string `json:"profile_picture,omitempty"`
}
