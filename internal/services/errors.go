package services

import "errors"

// Caller-visible failures. Handlers map these to HTTP statuses; anything else
// coming out of a service is a store failure wrapped with context.
var (
	// ErrNotFound means the proposal or catalog entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotPending means the proposal already reached a terminal status.
	ErrNotPending = errors.New("no longer pending")
	// ErrAlreadyVoted means the user already cast a vote on this proposal.
	ErrAlreadyVoted = errors.New("already voted")
	// ErrInvalidVote means the vote direction is not "up" or "down".
	ErrInvalidVote = errors.New("vote must be 'up' or 'down'")
	// ErrNotEligible means the voter has no collection item and no privileged role.
	ErrNotEligible = errors.New("you must have at least 1 jersey in your collection to vote")
	// ErrInvalidInput means a kind/mode/value outside the fixed enums.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlreadyExists means a uniqueness rule was violated on a direct create.
	ErrAlreadyExists = errors.New("already exists")
)
