package services

import (
	"context"
	"errors"
	"testing"

	"kitarchive/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestCollectionAddSyncsEstimateFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCollectionService(db)
	ctx := context.Background()

	_, version := createTestKit(t, db)
	user := createTestUser(t, db, models.RoleUser, false)

	item, err := svc.Add(ctx, user.UserID, &models.CollectionAddRequest{
		VersionID:      version.VersionID,
		EstimatedPrice: floatPtr(250.5),
	})
	if err != nil {
		t.Fatalf("failed to add item: %v", err)
	}

	for name, got := range map[string]*float64{
		"estimated_price": item.EstimatedPrice,
		"price_estimate":  item.PriceEstimate,
		"value_estimate":  item.ValueEstimate,
	} {
		if got == nil || *got != 250.5 {
			t.Errorf("%s not synced, got %v", name, got)
		}
	}
	if item.Category != "General" {
		t.Errorf("expected default category General, got %q", item.Category)
	}
}

func TestCollectionUpdateResyncsFromAnySynonym(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCollectionService(db)
	ctx := context.Background()

	_, version := createTestKit(t, db)
	user := createTestUser(t, db, models.RoleUser, false)

	item, err := svc.Add(ctx, user.UserID, &models.CollectionAddRequest{
		VersionID:     version.VersionID,
		ValueEstimate: floatPtr(100),
	})
	if err != nil {
		t.Fatalf("failed to add item: %v", err)
	}

	// Client updates through a different synonym
	if _, err := svc.Update(ctx, user.UserID, item.CollectionID, &models.CollectionUpdateRequest{
		PriceEstimate: floatPtr(180),
	}); err != nil {
		t.Fatalf("failed to update item: %v", err)
	}

	var stored models.CollectionItem
	if err := db.Where("collection_id = ?", item.CollectionID).First(&stored).Error; err != nil {
		t.Fatalf("failed to reload item: %v", err)
	}
	for name, got := range map[string]*float64{
		"estimated_price": stored.EstimatedPrice,
		"price_estimate":  stored.PriceEstimate,
		"value_estimate":  stored.ValueEstimate,
	} {
		if got == nil || *got != 180 {
			t.Errorf("%s not resynced, got %v", name, got)
		}
	}
}

func TestCollectionAddRejectsDuplicates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCollectionService(db)
	ctx := context.Background()

	_, version := createTestKit(t, db)
	user := createTestUser(t, db, models.RoleUser, false)

	if _, err := svc.Add(ctx, user.UserID, &models.CollectionAddRequest{VersionID: version.VersionID}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := svc.Add(ctx, user.UserID, &models.CollectionAddRequest{VersionID: version.VersionID}); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCollectionAddUnknownVersion(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCollectionService(db)

	user := createTestUser(t, db, models.RoleUser, false)
	_, err := svc.Add(context.Background(), user.UserID, &models.CollectionAddRequest{
		VersionID: "ver_000000000000",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCollectionUpdateScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCollectionService(db)
	ctx := context.Background()

	_, version := createTestKit(t, db)
	owner := createTestUser(t, db, models.RoleUser, false)
	intruder := createTestUser(t, db, models.RoleUser, false)

	item, err := svc.Add(ctx, owner.UserID, &models.CollectionAddRequest{VersionID: version.VersionID})
	if err != nil {
		t.Fatalf("failed to add item: %v", err)
	}

	if _, err := svc.Update(ctx, intruder.UserID, item.CollectionID, &models.CollectionUpdateRequest{
		Notes: strPtr("mine now"),
	}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign item, got %v", err)
	}
	if err := svc.Remove(ctx, intruder.UserID, item.CollectionID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign removal, got %v", err)
	}
}

func strPtr(s string) *string { return &s }

func TestCollectionStatsSpreadsMinMax(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCollectionService(db)
	ctx := context.Background()

	kit, version := createTestKit(t, db)
	user := createTestUser(t, db, models.RoleUser, false)

	// Three items: estimates 100 and 200, one without an estimate
	if _, err := svc.Add(ctx, user.UserID, &models.CollectionAddRequest{
		VersionID:     version.VersionID,
		ValueEstimate: floatPtr(100),
	}); err != nil {
		t.Fatalf("failed to add item: %v", err)
	}
	second := createVersion(t, db, kit.KitID)
	if _, err := svc.Add(ctx, user.UserID, &models.CollectionAddRequest{
		VersionID:     second.VersionID,
		ValueEstimate: floatPtr(200),
	}); err != nil {
		t.Fatalf("failed to add item: %v", err)
	}
	third := createVersion(t, db, kit.KitID)
	if _, err := svc.Add(ctx, user.UserID, &models.CollectionAddRequest{
		VersionID: third.VersionID,
	}); err != nil {
		t.Fatalf("failed to add item: %v", err)
	}

	stats, err := svc.Stats(ctx, user.UserID)
	if err != nil {
		t.Fatalf("failed to compute stats: %v", err)
	}

	if stats.TotalJerseys != 3 {
		t.Errorf("expected 3 jerseys, got %d", stats.TotalJerseys)
	}
	if stats.ItemsWithEstimates != 2 {
		t.Errorf("expected 2 estimated items, got %d", stats.ItemsWithEstimates)
	}
	// low = min × total, average = sum, high = max × total
	if stats.EstimatedValue.Low != 300 {
		t.Errorf("expected low 300, got %v", stats.EstimatedValue.Low)
	}
	if stats.EstimatedValue.Average != 300 {
		t.Errorf("expected average 300, got %v", stats.EstimatedValue.Average)
	}
	if stats.EstimatedValue.High != 600 {
		t.Errorf("expected high 600, got %v", stats.EstimatedValue.High)
	}
}

func TestCollectionStatsEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCollectionService(db)

	user := createTestUser(t, db, models.RoleUser, false)
	stats, err := svc.Stats(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("failed to compute stats: %v", err)
	}
	if stats.TotalJerseys != 0 || stats.EstimatedValue.High != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
}

func TestCollectionCategoryStats(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCollectionService(db)
	ctx := context.Background()

	kit, version := createTestKit(t, db)
	user := createTestUser(t, db, models.RoleUser, false)

	if _, err := svc.Add(ctx, user.UserID, &models.CollectionAddRequest{
		VersionID:     version.VersionID,
		Category:      "Match Worn",
		ValueEstimate: floatPtr(400),
	}); err != nil {
		t.Fatalf("failed to add item: %v", err)
	}
	second := createVersion(t, db, kit.KitID)
	if _, err := svc.Add(ctx, user.UserID, &models.CollectionAddRequest{
		VersionID:     second.VersionID,
		Category:      "Match Worn",
		ValueEstimate: floatPtr(200),
	}); err != nil {
		t.Fatalf("failed to add item: %v", err)
	}

	stats, err := svc.CategoryStats(ctx, user.UserID)
	if err != nil {
		t.Fatalf("failed to compute category stats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected one category, got %v", stats)
	}
	cs := stats[0]
	if cs.Category != "Match Worn" || cs.Count != 2 {
		t.Errorf("unexpected category row: %+v", cs)
	}
	if cs.EstimatedValue.Low != 200 || cs.EstimatedValue.Average != 300 || cs.EstimatedValue.High != 400 {
		t.Errorf("unexpected category aggregates: %+v", cs.EstimatedValue)
	}
}

func TestCollectionListEnrichment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCollectionService(db)
	ctx := context.Background()

	kit, version := createTestKit(t, db)
	user := createTestUser(t, db, models.RoleUser, false)

	if _, err := svc.Add(ctx, user.UserID, &models.CollectionAddRequest{VersionID: version.VersionID}); err != nil {
		t.Fatalf("failed to add item: %v", err)
	}

	items, err := svc.List(ctx, user.UserID, "")
	if err != nil {
		t.Fatalf("failed to list collection: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}
	if items[0].Version == nil || items[0].Version.VersionID != version.VersionID {
		t.Errorf("item not enriched with its version")
	}
	if items[0].MasterKit == nil || items[0].MasterKit.KitID != kit.KitID {
		t.Errorf("item not enriched with its master kit")
	}
}
