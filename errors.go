package pathsimp

import "errors"

var (
	// ErrEmptyPath is returned for a path or subpath without any commands.
	ErrEmptyPath = errors.New("empty path")
	// ErrInvalidCommand is returned for commands whose kind or points are
	// malformed.
	ErrInvalidCommand = errors.New("invalid command")
	// ErrNoIntersection is returned when two lines are parallel or coincident.
	ErrNoIntersection = errors.New("no intersection")
	// ErrDegenerateGeometry is returned when a computation needs a direction
	// or length that is zero.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrInvalidConfig is returned for tolerance settings that aren't positive
	// finite numbers.
	ErrInvalidConfig = errors.New("invalid configuration")
)
