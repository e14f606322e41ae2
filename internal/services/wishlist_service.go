package services

import (
	"context"
	"fmt"
	"time"

	"kitarchive/internal/models"
	"kitarchive/internal/utils"

	"gorm.io/gorm"
)

// WishlistService tracks versions a user wants but does not own.
type WishlistService struct {
	db *gorm.DB
}

func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

// Add puts a version on the user's wishlist.
func (s *WishlistService) Add(ctx context.Context, userID, versionID, notes string) (*models.WishlistItem, error) {
	var versionCount int64
	if err := s.db.WithContext(ctx).Model(&models.Version{}).Where("version_id = ?", versionID).Count(&versionCount).Error; err != nil {
		return nil, err
	}
	if versionCount == 0 {
		return nil, ErrNotFound
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.WishlistItem{}).
		Where("user_id = ? AND version_id = ?", userID, versionID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: version already wishlisted", ErrAlreadyExists)
	}

	item := &models.WishlistItem{
		WishlistID: utils.NewID("wish"),
		UserID:     userID,
		VersionID:  versionID,
		Notes:      notes,
		AddedAt:    time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return item, nil
}

// Remove deletes a wishlist entry owned by userID.
func (s *WishlistService) Remove(ctx context.Context, userID, wishlistID string) error {
	result := s.db.WithContext(ctx).
		Where("wishlist_id = ? AND user_id = ?", wishlistID, userID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns a user's wishlist, newest first.
func (s *WishlistService) List(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&items).Error
	return items, err
}
