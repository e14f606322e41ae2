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

// KitService is the trusted (non-proposal) path for master kits and versions.
type KitService struct {
	db *gorm.DB
}

func NewKitService(db *gorm.DB) *KitService {
	return &KitService{db: db}
}

// KitFilter narrows master kit listings.
type KitFilter struct {
	Club    string
	Season  string
	KitType string
	Brand   string
	League  string
	Gender  string
	Search  string
	Skip    int
	Limit   int
}

// ListKits returns master kits matching the filter.
func (s *KitService) ListKits(ctx context.Context, filter KitFilter) ([]models.MasterKit, error) {
	q := s.db.WithContext(ctx).Model(&models.MasterKit{})
	if filter.Club != "" {
		q = q.Where("club = ?", filter.Club)
	}
	if filter.Season != "" {
		q = q.Where("season = ?", filter.Season)
	}
	if filter.KitType != "" {
		q = q.Where("kit_type = ?", filter.KitType)
	}
	if filter.Brand != "" {
		q = q.Where("brand = ?", filter.Brand)
	}
	if filter.League != "" {
		q = q.Where("league = ?", filter.League)
	}
	if filter.Gender != "" {
		q = q.Where("gender = ?", filter.Gender)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("club LIKE ? OR brand LIKE ? OR league LIKE ? OR sponsor LIKE ?", like, like, like, like)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var kits []models.MasterKit
	err := q.Order("season DESC, club ASC").Offset(filter.Skip).Limit(limit).Find(&kits).Error
	return kits, err
}

// GetKit returns one master kit with its versions.
func (s *KitService) GetKit(ctx context.Context, kitID string) (*models.MasterKit, []models.Version, error) {
	var kit models.MasterKit
	if err := s.db.WithContext(ctx).Where("kit_id = ?", kitID).First(&kit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var versions []models.Version
	if err := s.db.WithContext(ctx).Where("kit_id = ?", kitID).Order("created_at ASC").Find(&versions).Error; err != nil {
		return nil, nil, err
	}
	return &kit, versions, nil
}

// CreateKit creates a master kit directly (trusted path) together with its
// mandatory default version.
func (s *KitService) CreateKit(ctx context.Context, userID string, req *models.MasterKitCreateRequest) (*models.MasterKit, error) {
	kit := &models.MasterKit{
		KitID:      utils.NewID("kit"),
		Club:       req.Club,
		Season:     req.Season,
		KitType:    req.KitType,
		Brand:      req.Brand,
		FrontPhoto: req.FrontPhoto,
		League:     req.League,
		Design:     req.Design,
		Sponsor:    req.Sponsor,
		Gender:     req.Gender,
		TeamID:     req.TeamID,
		LeagueID:   req.LeagueID,
		BrandID:    req.BrandID,
		CreatedBy:  userID,
		CreatedAt:  time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(kit).Error; err != nil {
			return err
		}
		return createDefaultVersion(tx, kit)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create master kit: %w", err)
	}
	return kit, nil
}

// GetVersion returns one version with its parent kit.
func (s *KitService) GetVersion(ctx context.Context, versionID string) (*models.Version, *models.MasterKit, error) {
	var version models.Version
	if err := s.db.WithContext(ctx).Where("version_id = ?", versionID).First(&version).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var kit models.MasterKit
	if err := s.db.WithContext(ctx).Where("kit_id = ?", version.KitID).First(&kit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &version, nil, nil
		}
		return nil, nil, err
	}
	return &version, &kit, nil
}

// ListVersions returns versions, optionally scoped to one kit.
func (s *KitService) ListVersions(ctx context.Context, kitID string, skip, limit int) ([]models.Version, error) {
	q := s.db.WithContext(ctx).Model(&models.Version{})
	if kitID != "" {
		q = q.Where("kit_id = ?", kitID)
	}
	if limit <= 0 {
		limit = 50
	}
	var versions []models.Version
	err := q.Order("created_at DESC").Offset(skip).Limit(limit).Find(&versions).Error
	return versions, err
}

// CreateVersion creates a version directly under an existing kit.
func (s *KitService) CreateVersion(ctx context.Context, userID string, req *models.VersionCreateRequest) (*models.Version, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.MasterKit{}).Where("kit_id = ?", req.KitID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	version := &models.Version{
		VersionID:    utils.NewID("ver"),
		KitID:        req.KitID,
		Competition:  req.Competition,
		Model:        req.Model,
		SkuCode:      req.SkuCode,
		EanCode:      req.EanCode,
		FrontPhoto:   req.FrontPhoto,
		BackPhoto:    req.BackPhoto,
		MainPlayerID: req.MainPlayerID,
		CreatedBy:    userID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(version).Error; err != nil {
		return nil, fmt.Errorf("failed to create version: %w", err)
	}
	return version, nil
}

// CountVersions returns the number of versions under a kit.
func (s *KitService) CountVersions(ctx context.Context, kitID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Version{}).Where("kit_id = ?", kitID).Count(&count).Error
	return count, err
}
