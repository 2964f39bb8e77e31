package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Configuration errors
	ErrMsgInvalidConfiguration = "invalid configuration"

	// Group purchase errors
	ErrMsgInsufficientParticipants = "insufficient participants"
	ErrMsgOrderNotOpen             = "order is not open"

	// Governance errors
	ErrMsgInsufficientVotingPower = "insufficient voting power"
	ErrMsgProposalNotActive       = "proposal is not active"
	ErrMsgConflictingVote         = "vote conflicts with earlier vote"

	// Staking errors
	ErrMsgLockedPosition   = "position is still locked"
	ErrMsgPositionNotFound = "staking position not found"

	// Ledger errors
	ErrMsgNegativeBalance     = "burn would exceed minted balance"
	ErrMsgInsufficientBalance = "insufficient balance"
	ErrMsgUnknownParticipant  = "unknown participant"
	ErrMsgNonPositiveAmount   = "amount must be positive"

	// Run lifecycle errors
	ErrMsgRunNotRunnable   = "run is not runnable"
	ErrMsgCoordinatorBound = "coordinator already bound to another run"

	// Lookup errors
	ErrMsgPresetNotFound   = "preset not found"
	ErrMsgScenarioNotFound = "projection scenario not found"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidConfiguration = errors.New(ErrMsgInvalidConfiguration)

	// ErrInsufficientParticipants is resolved by an automatic refund; it is reported, never fatal
	ErrInsufficientParticipants = errors.New(ErrMsgInsufficientParticipants)
	ErrOrderNotOpen             = errors.New(ErrMsgOrderNotOpen)

	ErrInsufficientVotingPower = errors.New(ErrMsgInsufficientVotingPower)
	ErrProposalNotActive       = errors.New(ErrMsgProposalNotActive)
	ErrConflictingVote         = errors.New(ErrMsgConflictingVote)

	ErrLockedPosition   = errors.New(ErrMsgLockedPosition)
	ErrPositionNotFound = errors.New(ErrMsgPositionNotFound)

	ErrNegativeBalance     = errors.New(ErrMsgNegativeBalance)
	ErrInsufficientBalance = errors.New(ErrMsgInsufficientBalance)
	ErrUnknownParticipant  = errors.New(ErrMsgUnknownParticipant)
	ErrNonPositiveAmount   = errors.New(ErrMsgNonPositiveAmount)

	ErrRunNotRunnable   = errors.New(ErrMsgRunNotRunnable)
	ErrCoordinatorBound = errors.New(ErrMsgCoordinatorBound)

	ErrPresetNotFound   = errors.New(ErrMsgPresetNotFound)
	ErrScenarioNotFound = errors.New(ErrMsgScenarioNotFound)
)
