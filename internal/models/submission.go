package models

import (
	"time"
)

// Proposal lifecycle states. Approved and rejected are terminal.
const (
	ProposalStatusPending  = "pending"
	ProposalStatusApproved = "approved"
	ProposalStatusRejected = "rejected"
)

// Catalog entity kinds a proposal can target
const (
	TargetMasterKit = "master_kit"
	TargetVersion   = "version"
	TargetTeam      = "team"
	TargetLeague    = "league"
	TargetBrand     = "brand"
	TargetPlayer    = "player"
)

// Submission modes for entity submissions
const (
	SubmissionModeCreate = "create"
	SubmissionModeEdit   = "edit"
)

// Vote directions
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// Submission is a community proposal for a new catalog entry (or an edit of an
// existing team/league/brand/player). VotesUp/VotesDown are weighted sums, not
// vote counts; Voters guards one vote per user.
type Submission struct {
	SubmissionID   string     `gorm:"primaryKey;size:40" json:"submission_id"`
	SubmissionType string     `gorm:"size:20;not null;index" json:"submission_type"`
	Mode           string     `gorm:"size:10;default:create" json:"mode"`
	EntityID       string     `gorm:"size:40" json:"entity_id,omitempty"`
	Data           JSONMap    `gorm:"type:text" json:"data"`
	SubmittedBy    string     `gorm:"size:40;not null;index" json:"submitted_by"`
	SubmitterName  string     `gorm:"size:255" json:"submitter_name"`
	Status         string     `gorm:"size:20;default:pending;index" json:"status"`
	VotesUp        int        `gorm:"default:0" json:"votes_up"`
	VotesDown      int        `gorm:"default:0" json:"votes_down"`
	Voters         StringList `gorm:"type:text" json:"voters"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TableName specifies the table name for Submission model
func (Submission) TableName() string {
	return "submissions"
}

// SubmissionCreateRequest is the payload for POST /api/submissions
type SubmissionCreateRequest struct {
	SubmissionType string  `json:"submission_type" binding:"required"`
	Mode           string  `json:"mode"`
	EntityID       string  `json:"entity_id"`
	Data           JSONMap `json:"data" binding:"required"`
}

// VoteRequest is the payload for casting a vote on a submission or report
type VoteRequest struct {
	Vote string `json:"vote" binding:"required"`
}

// ValidTargetType reports whether t names a catalog entity kind.
func ValidTargetType(t string) bool {
	switch t {
	case TargetMasterKit, TargetVersion, TargetTeam, TargetLeague, TargetBrand, TargetPlayer:
		return true
	}
	return false
}
