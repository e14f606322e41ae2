package models

import (
	"time"
)

// CollectionItem is a user's physical copy of a Version.
//
// EstimatedPrice, PriceEstimate and ValueEstimate are synonyms kept for wire
// compatibility with existing clients; every write path must keep the three in
// sync (see CollectionService).
type CollectionItem struct {
	CollectionID    string    `gorm:"primaryKey;size:40" json:"collection_id"`
	UserID          string    `gorm:"size:40;not null;index" json:"user_id"`
	VersionID       string    `gorm:"size:40;not null;index" json:"version_id"`
	Category        string    `gorm:"size:100;default:General" json:"category"`
	Notes           string    `gorm:"type:text" json:"notes"`
	FlockingType    string    `gorm:"size:100" json:"flocking_type"`
	FlockingOrigin  string    `gorm:"size:100" json:"flocking_origin"`
	FlockingDetail  string    `gorm:"size:255" json:"flocking_detail"`
	ConditionOrigin string    `gorm:"size:100" json:"condition_origin"`
	PhysicalState   string    `gorm:"size:100" json:"physical_state"`
	Size            string    `gorm:"size:20" json:"size"`
	PurchaseCost    *float64  `json:"purchase_cost,omitempty"`
	EstimatedPrice  *float64  `json:"estimated_price,omitempty"`
	PriceEstimate   *float64  `json:"price_estimate,omitempty"`
	ValueEstimate   *float64  `json:"value_estimate,omitempty"`
	Signed          bool      `gorm:"default:false" json:"signed"`
	SignedBy        string    `gorm:"size:255" json:"signed_by"`
	SignedProof     bool      `gorm:"default:false" json:"signed_proof"`
	Condition       string    `gorm:"size:100" json:"condition"`
	Printing        string    `gorm:"size:100" json:"printing"`
	AddedAt         time.Time `json:"added_at"`
}

// TableName specifies the table name for CollectionItem model
func (CollectionItem) TableName() string {
	return "collection_items"
}

// CollectionAddRequest is the payload for POST /api/collections
type CollectionAddRequest struct {
	VersionID       string   `json:"version_id" binding:"required"`
	Category        string   `json:"category"`
	Notes           string   `json:"notes"`
	FlockingType    string   `json:"flocking_type"`
	FlockingOrigin  string   `json:"flocking_origin"`
	FlockingDetail  string   `json:"flocking_detail"`
	ConditionOrigin string   `json:"condition_origin"`
	PhysicalState   string   `json:"physical_state"`
	Size            string   `json:"size"`
	PurchaseCost    *float64 `json:"purchase_cost"`
	EstimatedPrice  *float64 `json:"estimated_price"`
	PriceEstimate   *float64 `json:"price_estimate"`
	ValueEstimate   *float64 `json:"value_estimate"`
	Signed          bool     `json:"signed"`
	SignedBy        string   `json:"signed_by"`
	SignedProof     bool     `json:"signed_proof"`
	Condition       string   `json:"condition"`
	Printing        string   `json:"printing"`
}

// CollectionUpdateRequest is the payload for PUT /api/collections/:id.
// Nil pointers mean "leave unchanged".
type CollectionUpdateRequest struct {
	Category        *string  `json:"category"`
	Notes           *string  `json:"notes"`
	FlockingType    *string  `json:"flocking_type"`
	FlockingOrigin  *string  `json:"flocking_origin"`
	FlockingDetail  *string  `json:"flocking_detail"`
	ConditionOrigin *string  `json:"condition_origin"`
	PhysicalState   *string  `json:"physical_state"`
	Size            *string  `json:"size"`
	PurchaseCost    *float64 `json:"purchase_cost"`
	EstimatedPrice  *float64 `json:"estimated_price"`
	PriceEstimate   *float64 `json:"price_estimate"`
	ValueEstimate   *float64 `json:"value_estimate"`
	Signed          *bool    `json:"signed"`
	SignedBy        *string  `json:"signed_by"`
	SignedProof     *bool    `json:"signed_proof"`
	Condition       *string  `json:"condition"`
	Printing        *string  `json:"printing"`
}

// WishlistItem is a version a user wants but does not own yet
type WishlistItem struct {
	WishlistID string    `gorm:"primaryKey;size:40" json:"wishlist_id"`
	UserID     string    `gorm:"size:40;not null;index" json:"user_id"`
	VersionID  string    `gorm:"size:40;not null;index" json:"version_id"`
	Notes      string    `gorm:"type:text" json:"notes"`
	AddedAt    time.Time `json:"added_at"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
