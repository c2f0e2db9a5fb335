// Package version reports the splitchunks build.
//
// Values come from, in order of preference:
//   - Version, Commit and Date set with -ldflags at build time
//   - the main module's debug.BuildInfo (go install, VCS stamping)
//   - development placeholders
//
// Release builds set them with:
//
//	-ldflags "-X github.com/lsycxyj/disableSplitChunks/version.Version=v1.0.0 -X github.com/lsycxyj/disableSplitChunks/version.Commit=abc123 -X github.com/lsycxyj/disableSplitChunks/version.Date=2025-01-01T00:00:00Z"
package version
