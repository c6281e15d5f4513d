package courseservice

import "errors"

// Domain errors for the course service.
var (
	// ErrCourseNotFound indicates no course has the requested id.
	ErrCourseNotFound = errors.New("course not found")

	// ErrLoopNotFound indicates the course has no loop with the requested id or name.
	ErrLoopNotFound = errors.New("loop not found")
)
