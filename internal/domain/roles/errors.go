package roles

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrInvalidArgument = errors.New("invalid argument")
)
