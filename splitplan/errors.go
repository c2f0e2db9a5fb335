package splitplan

import "errors"

// Sentinel errors for package splitplan.
var (
	// Graph errors
	ErrDuplicateModule = errors.New("duplicate module id")
	ErrDuplicateEntry  = errors.New("duplicate entry")
	ErrEmptyEntry      = errors.New("entry name must not be empty")

	// Manifest errors
	ErrUnsupportedFormat = errors.New("unsupported manifest format")

	// Validation errors
	ErrSingleChunkGroup   = errors.New("group is referenced by a single chunk")
	ErrDuplicateGroup     = errors.New("duplicate group name")
	ErrUnsafeGroupName    = errors.New("group name is not a safe file name")
	ErrUnsafeChunkName    = errors.New("chunk name is not a safe file name")
	ErrChunkNameCollision = errors.New("chunk names collide after sanitizing")
	ErrDigestMismatch     = errors.New("digest does not match groups")
	ErrMissingDigest      = errors.New("digest is missing")
	ErrEmptyGroupName     = errors.New("group name must not be empty")
)
