package chunkname

import (
	"slices"
	"strings"
)

// SegmentSuffix is appended to the leading path segment to form a group name.
const SegmentSuffix = "-common"

// SegmentNamer buckets chunks named "<group>/<rest>" under "<group>-common".
type SegmentNamer struct{}

// Policy returns PolicySegment.
func (SegmentNamer) Policy() Policy { return PolicySegment }

// Name buckets req.Chunks with SegmentGroups.
func (SegmentNamer) Name(req Request) Decision {
	return SegmentGroups(Names(req.Chunks))
}

// SegmentGroups buckets names by their first path segment. Names without a
// separator or with an empty first segment are left out, and so is every
// bucket that ends up with a single chunk.
func SegmentGroups(names []string) Decision {
	groups := Decision{}
	for _, n := range names {
		group, _, ok := strings.Cut(n, "/")
		if !ok || group == "" {
			continue
		}
		key := Sanitize(group + SegmentSuffix)
		if slices.Contains(groups[key], n) {
			continue
		}
		groups[key] = append(groups[key], n)
	}
	for key, members := range groups {
		if len(members) < 2 {
			delete(groups, key)
		}
	}
	return groups
}
