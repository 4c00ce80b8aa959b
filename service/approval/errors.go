package approval

import "errors"

// Construction errors. Requests themselves are never rejected: an amount no
// level covers is simply left unhandled.
var (
	// ErrEmptyChain is returned when a chain is built without any level.
	ErrEmptyChain = errors.New("approval: empty chain")

	// ErrInvalidThreshold is returned for a level whose threshold is not positive.
	ErrInvalidThreshold = errors.New("approval: invalid threshold")

	// ErrInvalidLevel is returned for a level without a display name.
	ErrInvalidLevel = errors.New("approval: invalid level")

	// ErrUnknownRole is returned by ParseRole for an unrecognised role name.
	ErrUnknownRole = errors.New("approval: unknown role")
)
