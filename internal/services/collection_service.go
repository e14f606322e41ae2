package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"kitarchive/internal/models"
	"kitarchive/internal/utils"

	"gorm.io/gorm"
)

// CollectionService manages a user's jersey collection. It is the single
// owner of the estimate-synonym sync rule: estimated_price, price_estimate
// and value_estimate always persist the same value, because downstream
// statistics read only one of the three names.
type CollectionService struct {
	db *gorm.DB
}

func NewCollectionService(db *gorm.DB) *CollectionService {
	return &CollectionService{db: db}
}

// CollectionValue is the low/average/high aggregate over a set of estimates.
type CollectionValue struct {
	Low     float64 `json:"low"`
	Average float64 `json:"average"`
	High    float64 `json:"high"`
}

// CollectionStats summarizes a user's whole collection.
type CollectionStats struct {
	TotalJerseys       int             `json:"total_jerseys"`
	EstimatedValue     CollectionValue `json:"estimated_value"`
	ItemsWithEstimates int             `json:"items_with_estimates"`
}

// CategoryStats summarizes one category of a user's collection.
type CategoryStats struct {
	Category       string          `json:"category"`
	Count          int             `json:"count"`
	EstimatedValue CollectionValue `json:"estimated_value"`
}

// EnrichedItem is a collection item joined with its version and kit for
// display.
type EnrichedItem struct {
	models.CollectionItem
	Version   *models.Version   `json:"version,omitempty"`
	MasterKit *models.MasterKit `json:"master_kit,omitempty"`
}

// Add inserts a new collection item. A user can hold one item per version.
func (s *CollectionService) Add(ctx context.Context, userID string, req *models.CollectionAddRequest) (*models.CollectionItem, error) {
	var versionCount int64
	if err := s.db.WithContext(ctx).Model(&models.Version{}).Where("version_id = ?", req.VersionID).Count(&versionCount).Error; err != nil {
		return nil, err
	}
	if versionCount == 0 {
		return nil, ErrNotFound
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.CollectionItem{}).
		Where("user_id = ? AND version_id = ?", userID, req.VersionID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: version already in collection", ErrAlreadyExists)
	}

	category := req.Category
	if category == "" {
		category = "General"
	}

	item := &models.CollectionItem{
		CollectionID:    utils.NewID("col"),
		UserID:          userID,
		VersionID:       req.VersionID,
		Category:        category,
		Notes:           req.Notes,
		FlockingType:    req.FlockingType,
		FlockingOrigin:  req.FlockingOrigin,
		FlockingDetail:  req.FlockingDetail,
		ConditionOrigin: req.ConditionOrigin,
		PhysicalState:   req.PhysicalState,
		Size:            req.Size,
		PurchaseCost:    req.PurchaseCost,
		Signed:          req.Signed,
		SignedBy:        req.SignedBy,
		SignedProof:     req.SignedProof,
		Condition:       req.Condition,
		Printing:        req.Printing,
		AddedAt:         time.Now().UTC(),
	}

	// Whichever synonym the client sent becomes the value of all three
	if est := firstEstimate(req.EstimatedPrice, req.ValueEstimate, req.PriceEstimate); est != nil {
		item.EstimatedPrice = est
		item.PriceEstimate = est
		item.ValueEstimate = est
	}

	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to add to collection: %w", err)
	}
	return item, nil
}

// Update applies a partial update to a collection item owned by userID,
// re-syncing the estimate synonyms when any of them was supplied.
func (s *CollectionService) Update(ctx context.Context, userID, collectionID string, req *models.CollectionUpdateRequest) (*models.CollectionItem, error) {
	var item models.CollectionItem
	err := s.db.WithContext(ctx).
		Where("collection_id = ? AND user_id = ?", collectionID, userID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	setString := func(col string, v *string) {
		if v != nil {
			fields[col] = *v
		}
	}
	setString("category", req.Category)
	setString("notes", req.Notes)
	setString("flocking_type", req.FlockingType)
	setString("flocking_origin", req.FlockingOrigin)
	setString("flocking_detail", req.FlockingDetail)
	setString("condition_origin", req.ConditionOrigin)
	setString("physical_state", req.PhysicalState)
	setString("size", req.Size)
	setString("signed_by", req.SignedBy)
	setString("condition", req.Condition)
	setString("printing", req.Printing)
	if req.PurchaseCost != nil {
		fields["purchase_cost"] = *req.PurchaseCost
	}
	if req.Signed != nil {
		fields["signed"] = *req.Signed
	}
	if req.SignedProof != nil {
		fields["signed_proof"] = *req.SignedProof
	}

	if est := firstEstimate(req.EstimatedPrice, req.ValueEstimate, req.PriceEstimate); est != nil {
		fields["estimated_price"] = *est
		fields["price_estimate"] = *est
		fields["value_estimate"] = *est
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	if err := s.db.WithContext(ctx).Model(&item).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update collection item: %w", err)
	}
	return &item, nil
}

// Remove deletes a collection item owned by userID.
func (s *CollectionService) Remove(ctx context.Context, userID, collectionID string) error {
	result := s.db.WithContext(ctx).
		Where("collection_id = ? AND user_id = ?", collectionID, userID).
		Delete(&models.CollectionItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns a user's collection, newest first, enriched with version and
// kit data, optionally filtered by category.
func (s *CollectionService) List(ctx context.Context, userID, category string) ([]EnrichedItem, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var items []models.CollectionItem
	if err := q.Order("added_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}

	enriched := make([]EnrichedItem, 0, len(items))
	for _, item := range items {
		e := EnrichedItem{CollectionItem: item}
		var version models.Version
		if err := s.db.WithContext(ctx).Where("version_id = ?", item.VersionID).First(&version).Error; err == nil {
			e.Version = &version
			var kit models.MasterKit
			if err := s.db.WithContext(ctx).Where("kit_id = ?", version.KitID).First(&kit).Error; err == nil {
				e.MasterKit = &kit
			}
		}
		enriched = append(enriched, e)
	}
	return enriched, nil
}

// Categories returns the distinct categories in a user's collection.
func (s *CollectionService) Categories(ctx context.Context, userID string) ([]string, error) {
	var cats []string
	err := s.db.WithContext(ctx).
		Model(&models.CollectionItem{}).
		Where("user_id = ?", userID).
		Distinct("category").
		Pluck("category", &cats).Error
	if err != nil {
		return nil, err
	}
	sort.Strings(cats)
	return cats, nil
}

// Stats aggregates the collection's estimated value. The range spreads the
// single best/worst estimate across the whole collection: low = min × count,
// high = max × count, average = plain sum.
func (s *CollectionService) Stats(ctx context.Context, userID string) (*CollectionStats, error) {
	var items []models.CollectionItem
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}

	estimates := positiveEstimates(items)
	stats := &CollectionStats{
		TotalJerseys:       len(items),
		ItemsWithEstimates: len(estimates),
	}
	if len(estimates) > 0 {
		total := decimal.NewFromInt(int64(len(items)))
		min, max, sum := estimateBounds(estimates)
		stats.EstimatedValue = CollectionValue{
			Low:     roundDec(min.Mul(total)),
			Average: roundDec(sum),
			High:    roundDec(max.Mul(total)),
		}
	}
	return stats, nil
}

// CategoryStats aggregates estimates per category (min/avg/max within the
// category).
func (s *CollectionService) CategoryStats(ctx context.Context, userID string) ([]CategoryStats, error) {
	var items []models.CollectionItem
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}

	grouped := map[string][]models.CollectionItem{}
	order := []string{}
	for _, item := range items {
		cat := item.Category
		if cat == "" {
			cat = "General"
		}
		if _, seen := grouped[cat]; !seen {
			order = append(order, cat)
		}
		grouped[cat] = append(grouped[cat], item)
	}

	result := make([]CategoryStats, 0, len(order))
	for _, cat := range order {
		group := grouped[cat]
		cs := CategoryStats{Category: cat, Count: len(group)}
		estimates := positiveEstimates(group)
		if len(estimates) > 0 {
			min, max, sum := estimateBounds(estimates)
			avg := sum.Div(decimal.NewFromInt(int64(len(estimates))))
			cs.EstimatedValue = CollectionValue{
				Low:     roundDec(min),
				Average: roundDec(avg),
				High:    roundDec(max),
			}
		}
		result = append(result, cs)
	}
	return result, nil
}

// Count returns the number of items a user owns.
func (s *CollectionService) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.CollectionItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func firstEstimate(candidates ...*float64) *float64 {
	for _, c := range candidates {
		if c != nil && *c != 0 {
			v := *c
			return &v
		}
	}
	return nil
}

func positiveEstimates(items []models.CollectionItem) []decimal.Decimal {
	out := []decimal.Decimal{}
	for _, item := range items {
		if item.ValueEstimate != nil && *item.ValueEstimate > 0 {
			out = append(out, decimal.NewFromFloat(*item.ValueEstimate))
		}
	}
	return out
}

func estimateBounds(estimates []decimal.Decimal) (min, max, sum decimal.Decimal) {
	min = estimates[0]
	max = estimates[0]
	for _, e := range estimates {
		if e.LessThan(min) {
			min = e
		}
		if e.GreaterThan(max) {
			max = e
		}
		sum = sum.Add(e)
	}
	return min, max, sum
}

func roundDec(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
