package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kitarchive/internal/models"
	"kitarchive/internal/utils"

	"gorm.io/gorm"
)

// UserService resolves and maintains collector accounts. The moderator email
// allowlist is injected from config; it is consulted when a user record is
// created or refreshed at login, and the role stored on the record is
// authoritative afterwards.
type UserService struct {
	db              *gorm.DB
	moderatorEmails map[string]bool
}

func NewUserService(db *gorm.DB, moderatorEmails []string) *UserService {
	allow := make(map[string]bool, len(moderatorEmails))
	for _, email := range moderatorEmails {
		allow[strings.ToLower(email)] = true
	}
	return &UserService{db: db, moderatorEmails: allow}
}

// LoginRequest carries the identity payload of a verified login.
type LoginRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Login upserts the user for a verified identity and returns the record.
func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*models.User, error) {
	email := strings.ToLower(req.Email)

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			UserID:    utils.NewID("user"),
			Email:     email,
			Name:      req.Name,
			Picture:   req.Picture,
			Role:      s.resolveRole(email, ""),
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Picture != "" {
		updates["picture"] = req.Picture
	}
	if role := s.resolveRole(email, user.Role); role != user.Role {
		updates["role"] = role
		user.Role = role
	}
	if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to refresh user: %w", err)
	}
	return &user, nil
}

// resolveRole promotes allowlisted emails to moderator but never demotes an
// admin.
func (s *UserService) resolveRole(email, current string) string {
	if current == models.RoleAdmin {
		return current
	}
	if s.moderatorEmails[email] {
		return models.RoleModerator
	}
	if current != "" {
		return current
	}
	return models.RoleUser
}

// GetByID returns a user by ID.
func (s *UserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername returns a user by public username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial profile update, keeping usernames unique.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *models.ProfileUpdateRequest) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Username != nil {
		var taken int64
		err := s.db.WithContext(ctx).Model(&models.User{}).
			Where("username = ? AND user_id != ?", *req.Username, userID).
			Count(&taken).Error
		if err != nil {
			return nil, err
		}
		if taken > 0 {
			return nil, fmt.Errorf("%w: username taken", ErrAlreadyExists)
		}
		fields["username"] = *req.Username
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.CollectionPrivacy != nil {
		fields["collection_privacy"] = *req.CollectionPrivacy
	}
	if req.Picture != nil {
		fields["picture"] = *req.Picture
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	fields["updated_at"] = time.Now().UTC()

	if err := s.db.WithContext(ctx).Model(user).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// ProfileCounts returns the public activity counters shown on a profile.
func (s *UserService) ProfileCounts(ctx context.Context, userID string) (collections, reviews, submissions int64, err error) {
	if err = s.db.WithContext(ctx).Model(&models.CollectionItem{}).Where("user_id = ?", userID).Count(&collections).Error; err != nil {
		return
	}
	if err = s.db.WithContext(ctx).Model(&models.Review{}).Where("user_id = ?", userID).Count(&reviews).Error; err != nil {
		return
	}
	err = s.db.WithContext(ctx).Model(&models.Submission{}).Where("submitted_by = ?", userID).Count(&submissions).Error
	return
}
