package services

import (
	"context"
	"errors"
	"testing"

	"kitarchive/internal/models"
)

func TestReportSnapshotsTarget(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, 5)
	ctx := context.Background()

	kit, _ := createTestKit(t, db)
	reporter := createTestUser(t, db, models.RoleUser, true)

	report, err := svc.Create(ctx, reporter, &models.ReportCreateRequest{
		TargetType:  models.TargetMasterKit,
		TargetID:    kit.KitID,
		Corrections: models.JSONMap{"season": "2020-21"},
		Notes:       "season is off by one",
	})
	if err != nil {
		t.Fatalf("failed to create report: %v", err)
	}

	if report.Status != models.ProposalStatusPending {
		t.Errorf("expected pending, got %s", report.Status)
	}
	if report.OriginalData["season"] != "2019-20" {
		t.Errorf("snapshot must hold the pre-correction value, got %v", report.OriginalData["season"])
	}
	if report.ReporterName != reporter.Name {
		t.Errorf("expected reporter name %q, got %q", reporter.Name, report.ReporterName)
	}
}

func TestReportRejectsUnknownCorrectionKeys(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, 5)
	ctx := context.Background()

	kit, _ := createTestKit(t, db)
	reporter := createTestUser(t, db, models.RoleUser, true)

	// A key that is not a column on master_kits must fail fast at creation,
	// not at approval time where it would wedge the report forever.
	_, err := svc.Create(ctx, reporter, &models.ReportCreateRequest{
		TargetType: models.TargetMasterKit,
		TargetID:   kit.KitID,
		Corrections: models.JSONMap{
			"club":           "OGC Nice",
			"no_such_column": "boom",
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	var count int64
	db.Model(&models.Report{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected report must not be persisted, found %d", count)
	}

	// Identifier keys alone are tolerated; they are dropped at apply time
	report, err := svc.Create(ctx, reporter, &models.ReportCreateRequest{
		TargetType:  models.TargetMasterKit,
		TargetID:    kit.KitID,
		Corrections: models.JSONMap{"kit_id": "kit_hijacked0000", "season": "2021-22"},
	})
	if err != nil {
		t.Fatalf("identifier keys must not fail validation: %v", err)
	}

	moderator := createTestUser(t, db, models.RoleModerator, false)
	updated, err := svc.Vote(ctx, moderator, report.ReportID, models.VoteUp)
	if err != nil {
		t.Fatalf("approval failed: %v", err)
	}
	if updated.Status != models.ProposalStatusApproved {
		t.Errorf("expected approved, got %s", updated.Status)
	}
}

func TestReportVersionCorrectionColumns(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, 5)

	_, version := createTestKit(t, db)
	reporter := createTestUser(t, db, models.RoleUser, true)

	// Kit-only columns are not valid corrections on a version target
	_, err := svc.Create(context.Background(), reporter, &models.ReportCreateRequest{
		TargetType:  models.TargetVersion,
		TargetID:    version.VersionID,
		Corrections: models.JSONMap{"club": "Ajax"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReportAgainstMissingTarget(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, 5)

	reporter := createTestUser(t, db, models.RoleUser, true)
	_, err := svc.Create(context.Background(), reporter, &models.ReportCreateRequest{
		TargetType:  models.TargetVersion,
		TargetID:    "ver_000000000000",
		Corrections: models.JSONMap{"model": "Authentic"},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReportApprovalAppliesCorrections(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, 5)
	ctx := context.Background()

	kit, _ := createTestKit(t, db)
	reporter := createTestUser(t, db, models.RoleUser, true)
	moderator := createTestUser(t, db, models.RoleModerator, false)

	report, err := svc.Create(ctx, reporter, &models.ReportCreateRequest{
		TargetType: models.TargetMasterKit,
		TargetID:   kit.KitID,
		Corrections: models.JSONMap{
			"season":  "2020-21",
			"sponsor": "ASSE Cœur-Vert",
			"kit_id":  "kit_hijacked0000", // must never reach the row
		},
	})
	if err != nil {
		t.Fatalf("failed to create report: %v", err)
	}

	updated, err := svc.Vote(ctx, moderator, report.ReportID, models.VoteUp)
	if err != nil {
		t.Fatalf("moderator vote failed: %v", err)
	}
	if updated.Status != models.ProposalStatusApproved {
		t.Errorf("expected approved, got %s", updated.Status)
	}

	var fixed models.MasterKit
	if err := db.Where("kit_id = ?", kit.KitID).First(&fixed).Error; err != nil {
		t.Fatalf("corrected kit vanished: %v", err)
	}
	if fixed.Season != "2020-21" || fixed.Sponsor != "ASSE Cœur-Vert" {
		t.Errorf("corrections not applied: season=%q sponsor=%q", fixed.Season, fixed.Sponsor)
	}
	if fixed.Club != kit.Club {
		t.Errorf("uncorrected field changed: %q", fixed.Club)
	}
}

func TestReportVoteLedgerMatchesSubmissions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, 5)
	ctx := context.Background()

	_, version := createTestKit(t, db)
	reporter := createTestUser(t, db, models.RoleUser, true)

	report, err := svc.Create(ctx, reporter, &models.ReportCreateRequest{
		TargetType:  models.TargetVersion,
		TargetID:    version.VersionID,
		Corrections: models.JSONMap{"model": "Authentic"},
	})
	if err != nil {
		t.Fatalf("failed to create report: %v", err)
	}

	voter := createTestUser(t, db, models.RoleUser, true)
	if _, err := svc.Vote(ctx, voter, report.ReportID, models.VoteUp); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if _, err := svc.Vote(ctx, voter, report.ReportID, models.VoteUp); !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("expected ErrAlreadyVoted, got %v", err)
	}

	emptyHanded := createTestUser(t, db, models.RoleUser, false)
	if _, err := svc.Vote(ctx, emptyHanded, report.ReportID, models.VoteUp); !errors.Is(err, ErrNotEligible) {
		t.Errorf("expected ErrNotEligible, got %v", err)
	}

	// The version is untouched while the report is pending
	var current models.Version
	if err := db.Where("version_id = ?", version.VersionID).First(&current).Error; err != nil {
		t.Fatalf("failed to reload version: %v", err)
	}
	if current.Model != "Replica" {
		t.Errorf("pending report must not mutate the target, got %q", current.Model)
	}
}

func TestReportManualRejectLeavesTargetAlone(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, 5)
	ctx := context.Background()

	kit, _ := createTestKit(t, db)
	reporter := createTestUser(t, db, models.RoleUser, true)

	report, err := svc.Create(ctx, reporter, &models.ReportCreateRequest{
		TargetType:  models.TargetMasterKit,
		TargetID:    kit.KitID,
		Corrections: models.JSONMap{"season": "1999-00"},
	})
	if err != nil {
		t.Fatalf("failed to create report: %v", err)
	}

	updated, err := svc.SetStatus(ctx, report.ReportID, models.ProposalStatusRejected)
	if err != nil {
		t.Fatalf("manual reject failed: %v", err)
	}
	if updated.Status != models.ProposalStatusRejected {
		t.Errorf("expected rejected, got %s", updated.Status)
	}

	var current models.MasterKit
	db.Where("kit_id = ?", kit.KitID).First(&current)
	if current.Season != "2019-20" {
		t.Errorf("rejected report must not mutate the target, got %q", current.Season)
	}
}
