package services

import (
	"context"
	"errors"
	"testing"

	"kitarchive/internal/models"
)

func TestCreateKitSpawnsDefaultVersion(t *testing.T) {
	db := setupTestDB(t)
	svc := NewKitService(db)
	ctx := context.Background()

	user := createTestUser(t, db, models.RoleUser, false)
	kit, err := svc.CreateKit(ctx, user.UserID, &models.MasterKitCreateRequest{
		Club:       "Ajax",
		Season:     "1994-95",
		KitType:    "Home",
		Brand:      "Umbro",
		FrontPhoto: "https://img.example.com/ajax-9495.jpg",
	})
	if err != nil {
		t.Fatalf("failed to create kit: %v", err)
	}

	versions, err := svc.ListVersions(ctx, kit.KitID, 0, 10)
	if err != nil {
		t.Fatalf("failed to list versions: %v", err)
	}
	if len(versions) != 1 {
		t.Fatalf("expected exactly one default version, got %d", len(versions))
	}
	v := versions[0]
	if v.Competition != models.DefaultVersionCompetition || v.Model != models.DefaultVersionModel {
		t.Errorf("unexpected defaults: %s / %s", v.Competition, v.Model)
	}
	if v.FrontPhoto != kit.FrontPhoto {
		t.Errorf("default version must inherit the kit photo, got %q", v.FrontPhoto)
	}
}

func TestCreateVersionRequiresExistingKit(t *testing.T) {
	db := setupTestDB(t)
	svc := NewKitService(db)

	user := createTestUser(t, db, models.RoleUser, false)
	_, err := svc.CreateVersion(context.Background(), user.UserID, &models.VersionCreateRequest{
		KitID:       "kit_000000000000",
		Competition: "National Cup",
		Model:       "Authentic",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListKitsSearch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewKitService(db)
	ctx := context.Background()

	user := createTestUser(t, db, models.RoleUser, false)
	for _, club := range []string{"Ajax", "Feyenoord", "PSV"} {
		if _, err := svc.CreateKit(ctx, user.UserID, &models.MasterKitCreateRequest{
			Club:    club,
			Season:  "2023-24",
			KitType: "Home",
			Brand:   "Puma",
		}); err != nil {
			t.Fatalf("failed to seed kit: %v", err)
		}
	}

	kits, err := svc.ListKits(ctx, KitFilter{Search: "feyen"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(kits) != 1 || kits[0].Club != "Feyenoord" {
		t.Errorf("expected Feyenoord only, got %v", kits)
	}

	kits, err = svc.ListKits(ctx, KitFilter{Brand: "Puma"})
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	if len(kits) != 3 {
		t.Errorf("expected 3 kits by brand, got %d", len(kits))
	}
}

func TestReviewUpsertAndAverage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	ctx := context.Background()

	_, version := createTestKit(t, db)
	alice := createTestUser(t, db, models.RoleUser, false)
	bob := createTestUser(t, db, models.RoleUser, false)

	if _, err := svc.Create(ctx, alice, &models.ReviewCreateRequest{VersionID: version.VersionID, Rating: 5, Comment: "superb fabric"}); err != nil {
		t.Fatalf("failed to create review: %v", err)
	}
	if _, err := svc.Create(ctx, bob, &models.ReviewCreateRequest{VersionID: version.VersionID, Rating: 1}); err != nil {
		t.Fatalf("failed to create review: %v", err)
	}

	// Re-reviewing replaces, never duplicates
	if _, err := svc.Create(ctx, bob, &models.ReviewCreateRequest{VersionID: version.VersionID, Rating: 3}); err != nil {
		t.Fatalf("failed to replace review: %v", err)
	}

	avg, count, err := svc.AverageRating(ctx, version.VersionID)
	if err != nil {
		t.Fatalf("failed to compute average: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 reviews, got %d", count)
	}
	if avg != 4 {
		t.Errorf("expected average 4, got %v", avg)
	}
}
