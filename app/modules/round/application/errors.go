package roundservice

import "errors"

var (
	// ErrRoundNotFound is returned for unknown live or saved round ids.
	ErrRoundNotFound = errors.New("round not found")
	// ErrCourseNotFound is returned when the selected course does not exist.
	ErrCourseNotFound = errors.New("course not found")
	// ErrLoopNotFound is returned when the selected loop is not on the course.
	ErrLoopNotFound = errors.New("loop not found")
	// ErrPlayerRequired is returned when a round is started without a player.
	ErrPlayerRequired = errors.New("player id is required")
	// ErrSaveInProgress is returned when a completed round is already being saved.
	ErrSaveInProgress = errors.New("round save in progress")
)
