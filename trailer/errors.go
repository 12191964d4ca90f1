package trailer

import "errors"

var (
	// ErrNotFound is returned when no trailer exists for a name.
	ErrNotFound = errors.New("trailer not found")

	// ErrNoVideoID is returned when a resolved URL carries no "v" parameter.
	ErrNoVideoID = errors.New("no video id in trailer URL")
)
