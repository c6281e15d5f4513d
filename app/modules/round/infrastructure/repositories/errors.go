package rounddb

import "errors"

// ErrNotFound is returned when a saved round does not exist.
var ErrNotFound = errors.New("saved round not found")
