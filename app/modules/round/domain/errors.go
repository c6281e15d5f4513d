package rounddomain

import "errors"

// Domain errors for the round state machine. None of them changes session state.
var (
	ErrNoActiveRound     = errors.New("no active round")
	ErrNoLoopData        = errors.New("no loop data")
	ErrLoopNotFound      = errors.New("loop not found on course")
	ErrHoleNotLoaded     = errors.New("hole data not loaded")
	ErrShotNotFound      = errors.New("shot not found")
	ErrInvalidScore      = errors.New("score must be a positive integer")
	ErrInvalidLie        = errors.New("invalid lie")
	ErrInvalidClub       = errors.New("club is required")
	ErrStaleHoleData     = errors.New("stale hole data")
	ErrRoundCompleted    = errors.New("round already completed")
	ErrInvalidTransition = errors.New("invalid state transition")
)
