package bundler

import "errors"

// Sentinel errors for package bundler.
var (
	ErrBuildFailed  = errors.New("esbuild build failed")
	ErrNoEntries    = errors.New("no entry points configured")
	ErrNoOutdir     = errors.New("output directory is required for code splitting")
	ErrBadMetafile  = errors.New("invalid esbuild metafile")
	ErrUnknownEntry = errors.New("metafile references an unconfigured entry point")
)
