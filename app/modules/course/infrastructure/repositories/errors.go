package coursedb

import "errors"

// ErrNotFound is returned when a course row does not exist.
var ErrNotFound = errors.New("course data not found")
