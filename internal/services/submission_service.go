package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"kitarchive/internal/models"
	"kitarchive/internal/repository"
	"kitarchive/internal/utils"

	"gorm.io/gorm"
)

// SubmissionService owns the submission lifecycle: creation, the weighted vote
// ledger, and the pending → approved transition that applies the proposed
// catalog entry.
type SubmissionService struct {
	db        *gorm.DB
	repo      *repository.Repository
	threshold int

	// Serializes vote-and-maybe-apply so two concurrent threshold-crossing
	// votes cannot both run the catalog mutation.
	mu sync.Mutex
}

func NewSubmissionService(db *gorm.DB, threshold int) *SubmissionService {
	return &SubmissionService{
		db:        db,
		repo:      repository.NewRepository(db),
		threshold: threshold,
	}
}

// Create parks a new submission in pending state with zero votes.
func (s *SubmissionService) Create(ctx context.Context, user *models.User, req *models.SubmissionCreateRequest) (*models.Submission, error) {
	if !models.ValidTargetType(req.SubmissionType) {
		return nil, fmt.Errorf("%w: invalid submission type %q", ErrInvalidInput, req.SubmissionType)
	}

	mode := req.Mode
	if mode == "" {
		mode = models.SubmissionModeCreate
	}
	if mode != models.SubmissionModeCreate && mode != models.SubmissionModeEdit {
		return nil, fmt.Errorf("%w: invalid mode %q", ErrInvalidInput, mode)
	}
	if mode == models.SubmissionModeEdit && req.EntityID == "" {
		return nil, fmt.Errorf("%w: entity_id is required for edit submissions", ErrInvalidInput)
	}

	sub := &models.Submission{
		SubmissionID:   utils.NewID("sub"),
		SubmissionType: req.SubmissionType,
		Mode:           mode,
		EntityID:       req.EntityID,
		Data:           req.Data,
		SubmittedBy:    user.UserID,
		SubmitterName:  user.Name,
		Status:         models.ProposalStatusPending,
		Voters:         models.StringList{},
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.CreateSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}
	return sub, nil
}

// GetByID returns one submission.
func (s *SubmissionService) GetByID(ctx context.Context, submissionID string) (*models.Submission, error) {
	sub, err := s.repo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNotFound
	}
	return sub, nil
}

// List returns submissions filtered by status.
func (s *SubmissionService) List(ctx context.Context, status string, skip, limit int) ([]models.Submission, error) {
	return s.repo.ListSubmissions(ctx, status, skip, limit)
}

// ListByUser returns a user's own submissions.
func (s *SubmissionService) ListByUser(ctx context.Context, userID string) ([]models.Submission, error) {
	return s.repo.ListSubmissionsByUser(ctx, userID)
}

// Vote records one weighted vote and, when the accumulated up-vote weight
// reaches the approval threshold, applies the submission to the catalog and
// flips it to approved inside one transaction, so a failed catalog write
// leaves the submission pending and the vote unrecorded.
func (s *SubmissionService) Vote(ctx context.Context, user *models.User, submissionID, direction string) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := s.repo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNotFound
	}
	if err := checkVoteState(sub.Status, sub.Voters, user.UserID, direction); err != nil {
		return nil, err
	}
	if err := checkVoterEligibility(ctx, s.repo, user); err != nil {
		return nil, err
	}

	weight := voteWeight(user, direction, s.threshold)
	if direction == models.VoteUp {
		sub.VotesUp += weight
	} else {
		sub.VotesDown += weight
	}
	sub.Voters = append(sub.Voters, user.UserID)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if sub.VotesUp >= s.threshold {
			if err := applySubmission(tx, sub); err != nil {
				return err
			}
			sub.Status = models.ProposalStatusApproved
		}
		return tx.Save(sub).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	if sub.Status == models.ProposalStatusApproved {
		log.Printf("Submission %s approved (%d up / %d down)", sub.SubmissionID, sub.VotesUp, sub.VotesDown)
	}
	return sub, nil
}

// SetStatus is the manual moderation override. Approving this way applies the
// catalog mutation exactly as a threshold crossing would; rejection never
// happens automatically, only through this path.
func (s *SubmissionService) SetStatus(ctx context.Context, submissionID, status string) (*models.Submission, error) {
	if status != models.ProposalStatusApproved && status != models.ProposalStatusRejected {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := s.repo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNotFound
	}
	if sub.Status != models.ProposalStatusPending {
		return nil, ErrNotPending
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if status == models.ProposalStatusApproved {
			if err := applySubmission(tx, sub); err != nil {
				return err
			}
		}
		sub.Status = status
		return tx.Save(sub).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update submission status: %w", err)
	}
	return sub, nil
}
