package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kitarchive/internal/models"
	"kitarchive/internal/utils"

	"gorm.io/gorm"
)

// ReviewService manages version ratings: one review per user per version,
// re-reviewing replaces the previous rating.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// Create adds or replaces the user's review of a version.
func (s *ReviewService) Create(ctx context.Context, user *models.User, req *models.ReviewCreateRequest) (*models.Review, error) {
	var versionCount int64
	if err := s.db.WithContext(ctx).Model(&models.Version{}).Where("version_id = ?", req.VersionID).Count(&versionCount).Error; err != nil {
		return nil, err
	}
	if versionCount == 0 {
		return nil, ErrNotFound
	}

	var existing models.Review
	err := s.db.WithContext(ctx).
		Where("version_id = ? AND user_id = ?", req.VersionID, user.UserID).
		First(&existing).Error
	if err == nil {
		updates := map[string]interface{}{
			"rating":  req.Rating,
			"comment": req.Comment,
		}
		if err := s.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update review: %w", err)
		}
		existing.Rating = req.Rating
		existing.Comment = req.Comment
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		ReviewID:    utils.NewID("rev"),
		VersionID:   req.VersionID,
		UserID:      user.UserID,
		UserName:    user.Name,
		UserPicture: user.Picture,
		Rating:      req.Rating,
		Comment:     req.Comment,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// ListByVersion returns reviews of a version, newest first.
func (s *ReviewService) ListByVersion(ctx context.Context, versionID string) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Where("version_id = ?", versionID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// AverageRating returns the average rating and review count for a version.
func (s *ReviewService) AverageRating(ctx context.Context, versionID string) (float64, int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Review{}).Where("version_id = ?", versionID).Count(&count).Error; err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}
	var avg float64
	err := s.db.WithContext(ctx).Model(&models.Review{}).
		Where("version_id = ?", versionID).
		Select("AVG(rating)").
		Scan(&avg).Error
	return avg, count, err
}

// Delete removes the user's own review.
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID string) error {
	result := s.db.WithContext(ctx).
		Where("review_id = ? AND user_id = ?", reviewID, userID).
		Delete(&models.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
