package planfs

import "errors"

// Sentinel errors for package planfs.
var (
	ErrNameCollision = errors.New("two plan entries map to the same file")
)
