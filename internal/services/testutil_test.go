package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"kitarchive/internal/models"
	"kitarchive/internal/utils"
)

// setupTestDB opens a fresh in-memory database named after the test so
// parallel tests never share state. cache=shared keeps the schema visible
// across gorm's pooled connections.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.MasterKit{},
		&models.Version{},
		&models.Team{},
		&models.League{},
		&models.Brand{},
		&models.Player{},
		&models.Submission{},
		&models.Report{},
		&models.CollectionItem{},
		&models.WishlistItem{},
		&models.Review{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

// createTestUser inserts a user with the given role. Non-privileged users get
// one collection item so they pass the vote eligibility gate.
func createTestUser(t *testing.T, db *gorm.DB, role string, ownsJersey bool) *models.User {
	t.Helper()

	user := &models.User{
		UserID: utils.NewID("user"),
		Email:  utils.NewID("user") + "@example.com",
		Name:   "Test Collector",
		Role:   role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if ownsJersey {
		item := &models.CollectionItem{
			CollectionID: utils.NewID("col"),
			UserID:       user.UserID,
			VersionID:    utils.NewID("ver"),
			Category:     "General",
			AddedAt:      time.Now().UTC(),
		}
		if err := db.Create(item).Error; err != nil {
			t.Fatalf("failed to seed collection item: %v", err)
		}
	}

	return user
}

// createTestKit inserts a master kit with one version and returns both.
func createTestKit(t *testing.T, db *gorm.DB) (*models.MasterKit, *models.Version) {
	t.Helper()

	kit := &models.MasterKit{
		KitID:     utils.NewID("kit"),
		Club:      "AS Saint-Étienne",
		Season:    "2019-20",
		KitType:   "Home",
		Brand:     "Le Coq Sportif",
		CreatedAt: time.Now().UTC(),
	}
	if err := db.Create(kit).Error; err != nil {
		t.Fatalf("failed to create kit: %v", err)
	}

	version := &models.Version{
		VersionID:   utils.NewID("ver"),
		KitID:       kit.KitID,
		Competition: "National Championship",
		Model:       "Replica",
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.Create(version).Error; err != nil {
		t.Fatalf("failed to create version: %v", err)
	}

	return kit, version
}

// createVersion inserts an extra version under an existing kit.
func createVersion(t *testing.T, db *gorm.DB, kitID string) *models.Version {
	t.Helper()

	version := &models.Version{
		VersionID:   utils.NewID("ver"),
		KitID:       kitID,
		Competition: "National Cup",
		Model:       "Authentic",
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.Create(version).Error; err != nil {
		t.Fatalf("failed to create version: %v", err)
	}
	return version
}
