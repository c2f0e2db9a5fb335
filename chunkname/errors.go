package chunkname

import "errors"

// Sentinel errors for package chunkname.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Boundary errors
	ErrInvalidChunk = errors.New("chunk record has no string name")

	// Policy errors
	ErrUnknownPolicy = errors.New("unknown naming policy")
)
