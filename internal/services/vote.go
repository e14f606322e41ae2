package services

import (
	"context"

	"kitarchive/internal/models"
	"kitarchive/internal/repository"
)

// Vote ledger rules shared by submissions and reports.
//
// Precondition order is part of the contract: existence → pending → duplicate
// → direction → eligibility, first failure wins.

// checkVoteState validates a vote against the proposal's current state.
func checkVoteState(status string, voters models.StringList, userID, direction string) error {
	if status != models.ProposalStatusPending {
		return ErrNotPending
	}
	if voters.Contains(userID) {
		return ErrAlreadyVoted
	}
	if direction != models.VoteUp && direction != models.VoteDown {
		return ErrInvalidVote
	}
	return nil
}

// checkVoterEligibility enforces the community gate: non-privileged voters
// must own at least one jersey.
func checkVoterEligibility(ctx context.Context, repo *repository.Repository, user *models.User) error {
	if user.IsPrivileged() {
		return nil
	}
	count, err := repo.CountCollectionItems(ctx, user.UserID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotEligible
	}
	return nil
}

// voteWeight returns the weighted score of one vote. A privileged upvote
// carries the full approval threshold (instant approval); everything else,
// including a privileged downvote, counts as 1. Moderators can unilaterally
// approve but not unilaterally reject.
func voteWeight(user *models.User, direction string, threshold int) int {
	if user.IsPrivileged() && direction == models.VoteUp {
		return threshold
	}
	return 1
}
