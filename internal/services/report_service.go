package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"kitarchive/internal/models"
	"kitarchive/internal/repository"
	"kitarchive/internal/utils"

	"gorm.io/gorm"
)

// ReportService owns correction reports against existing master kits and
// versions. Same vote ledger and approval threshold as submissions; an
// approved report applies its corrections as a partial update on the target.
type ReportService struct {
	db        *gorm.DB
	repo      *repository.Repository
	threshold int

	mu sync.Mutex
}

func NewReportService(db *gorm.DB, threshold int) *ReportService {
	return &ReportService{
		db:        db,
		repo:      repository.NewRepository(db),
		threshold: threshold,
	}
}

// Create opens a report against an existing kit or version, snapshotting the
// target's current fields for audit/diff display.
func (s *ReportService) Create(ctx context.Context, user *models.User, req *models.ReportCreateRequest) (*models.Report, error) {
	if err := validateCorrections(req.TargetType, req.Corrections); err != nil {
		return nil, err
	}

	var original models.JSONMap
	switch req.TargetType {
	case models.TargetMasterKit:
		var kit models.MasterKit
		if err := s.db.WithContext(ctx).Where("kit_id = ?", req.TargetID).First(&kit).Error; err != nil {
			return nil, targetLookupErr(err)
		}
		original = snapshot(kit)
	case models.TargetVersion:
		var version models.Version
		if err := s.db.WithContext(ctx).Where("version_id = ?", req.TargetID).First(&version).Error; err != nil {
			return nil, targetLookupErr(err)
		}
		original = snapshot(version)
	default:
		return nil, fmt.Errorf("%w: invalid target type %q", ErrInvalidInput, req.TargetType)
	}

	reportType := req.ReportType
	if reportType == "" {
		reportType = "error"
	}

	report := &models.Report{
		ReportID:     utils.NewID("rep"),
		TargetType:   req.TargetType,
		TargetID:     req.TargetID,
		OriginalData: original,
		Corrections:  req.Corrections,
		Notes:        req.Notes,
		ReportType:   reportType,
		ReportedBy:   user.UserID,
		ReporterName: user.Name,
		Status:       models.ProposalStatusPending,
		Voters:       models.StringList{},
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return report, nil
}

// GetByID returns one report.
func (s *ReportService) GetByID(ctx context.Context, reportID string) (*models.Report, error) {
	report, err := s.repo.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrNotFound
	}
	return report, nil
}

// List returns reports filtered by status.
func (s *ReportService) List(ctx context.Context, status string, skip, limit int) ([]models.Report, error) {
	return s.repo.ListReports(ctx, status, skip, limit)
}

// ListByUser returns a user's own reports.
func (s *ReportService) ListByUser(ctx context.Context, userID string) ([]models.Report, error) {
	return s.repo.ListReportsByUser(ctx, userID)
}

// Vote mirrors SubmissionService.Vote for reports: same weighting, same
// threshold, same single-transaction apply-and-approve.
func (s *ReportService) Vote(ctx context.Context, user *models.User, reportID, direction string) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.repo.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrNotFound
	}
	if err := checkVoteState(report.Status, report.Voters, user.UserID, direction); err != nil {
		return nil, err
	}
	if err := checkVoterEligibility(ctx, s.repo, user); err != nil {
		return nil, err
	}

	weight := voteWeight(user, direction, s.threshold)
	if direction == models.VoteUp {
		report.VotesUp += weight
	} else {
		report.VotesDown += weight
	}
	report.Voters = append(report.Voters, user.UserID)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if report.VotesUp >= s.threshold {
			if err := applyReport(tx, report); err != nil {
				return err
			}
			report.Status = models.ProposalStatusApproved
		}
		return tx.Save(report).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	if report.Status == models.ProposalStatusApproved {
		log.Printf("Report %s approved against %s %s", report.ReportID, report.TargetType, report.TargetID)
	}
	return report, nil
}

// SetStatus is the manual moderation override for reports.
func (s *ReportService) SetStatus(ctx context.Context, reportID, status string) (*models.Report, error) {
	if status != models.ProposalStatusApproved && status != models.ProposalStatusRejected {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.repo.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrNotFound
	}
	if report.Status != models.ProposalStatusPending {
		return nil, ErrNotPending
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if status == models.ProposalStatusApproved {
			if err := applyReport(tx, report); err != nil {
				return err
			}
		}
		report.Status = status
		return tx.Save(report).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update report status: %w", err)
	}
	return report, nil
}

// snapshot converts a catalog record into the loosely-typed map stored as the
// report's original_data.
func snapshot(v interface{}) models.JSONMap {
	raw, err := json.Marshal(v)
	if err != nil {
		return models.JSONMap{}
	}
	var m models.JSONMap
	if err := json.Unmarshal(raw, &m); err != nil {
		return models.JSONMap{}
	}
	return m
}

func targetLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to load report target: %w", err)
}
