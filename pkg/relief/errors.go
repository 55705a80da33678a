package relief

import "errors"

// Errors reported by the relief builder. Both are wrapped with context; match
// them with errors.Is.
var (
	// ErrInvalidConfig is returned before any geometry is built when a Config
	// fails validation.
	ErrInvalidConfig = errors.New("invalid relief config")

	// ErrInvalidImage is returned when the source image is missing or has a
	// zero width or height.
	ErrInvalidImage = errors.New("invalid source image")
)
