package splitplan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lsycxyj/disableSplitChunks/chunkname"
)

// CheckGroupName reports whether name can be used as a single file name.
func CheckGroupName(name string) error {
	switch {
	case name == "":
		return ErrEmptyGroupName
	case name == "." || name == "..", strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q", ErrUnsafeGroupName, name)
	}
	return nil
}

// ChunkFileName is the file name a chunk is listed under, or an error when
// the sanitized name is not a usable file name.
func ChunkFileName(chunk string) (string, error) {
	name := chunkname.Sanitize(chunk)
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrUnsafeChunkName, chunk)
	}
	return name, nil
}

// Validate re-checks the invariants Build guarantees. Every violation is
// reported; the result is nil for a sound plan.
func (p *Plan) Validate() error {
	var errs []error
	seen := map[string]bool{}
	for _, g := range p.Groups {
		if err := CheckGroupName(g.Name); err != nil {
			errs = append(errs, err)
		}
		if seen[g.Name] {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateGroup, g.Name))
		}
		seen[g.Name] = true
		if len(g.Chunks) < 2 {
			errs = append(errs, fmt.Errorf("%w: %q", ErrSingleChunkGroup, g.Name))
		}
	}

	files := map[string]string{}
	for _, c := range p.Chunks() {
		name, err := ChunkFileName(c)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if other, ok := files[name]; ok {
			errs = append(errs, fmt.Errorf("%w: %q and %q are both %q", ErrChunkNameCollision, other, c, name))
			continue
		}
		files[name] = c
	}

	switch {
	case p.Digest == "":
		errs = append(errs, ErrMissingDigest)
	case p.Digest != p.ComputeDigest():
		errs = append(errs, ErrDigestMismatch)
	}
	return errors.Join(errs...)
}
