package repository

import (
	"context"
	"errors"

	"kitarchive/internal/models"

	"gorm.io/gorm"
)

// Repository wraps store access for the proposal aggregates (submissions and
// reports). Catalog writes triggered by approvals happen inside the same
// transaction as the status flip, so those go through the transaction handle
// instead.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateSubmission inserts a new submission
func (r *Repository) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

// GetSubmissionByID retrieves a submission by its opaque ID
func (r *Repository) GetSubmissionByID(ctx context.Context, submissionID string) (*models.Submission, error) {
	var sub models.Submission
	err := r.db.WithContext(ctx).Where("submission_id = ?", submissionID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListSubmissions lists submissions, optionally filtered by status, newest first
func (r *Repository) ListSubmissions(ctx context.Context, status string, skip, limit int) ([]models.Submission, error) {
	var subs []models.Submission
	q := r.db.WithContext(ctx).Model(&models.Submission{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Offset(skip).Limit(limit).Find(&subs).Error
	return subs, err
}

// ListSubmissionsByUser lists a user's own submissions, newest first
func (r *Repository) ListSubmissionsByUser(ctx context.Context, userID string) ([]models.Submission, error) {
	var subs []models.Submission
	err := r.db.WithContext(ctx).
		Where("submitted_by = ?", userID).
		Order("created_at DESC").
		Find(&subs).Error
	return subs, err
}

// CreateReport inserts a new report
func (r *Repository) CreateReport(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// GetReportByID retrieves a report by its opaque ID
func (r *Repository) GetReportByID(ctx context.Context, reportID string) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).Where("report_id = ?", reportID).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ListReports lists reports, optionally filtered by status, newest first
func (r *Repository) ListReports(ctx context.Context, status string, skip, limit int) ([]models.Report, error) {
	var reports []models.Report
	q := r.db.WithContext(ctx).Model(&models.Report{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Offset(skip).Limit(limit).Find(&reports).Error
	return reports, err
}

// ListReportsByUser lists a user's own reports, newest first
func (r *Repository) ListReportsByUser(ctx context.Context, userID string) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.WithContext(ctx).
		Where("reported_by = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

// CountCollectionItems counts a user's collection items (voting eligibility gate)
func (r *Repository) CountCollectionItems(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CollectionItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
