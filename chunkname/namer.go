package chunkname

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DefaultCommonName is used when a module is shared by every entry.
const DefaultCommonName = "common"

// DefaultCacheGroup is the cache group key used by PolicyModule.
const DefaultCacheGroup = "commons"

// Policy selects the naming heuristic.
type Policy string

// Known policies. PolicyPrefix is the default.
const (
	PolicyPrefix  Policy = "prefix"
	PolicySegment Policy = "segment"
	PolicyModule  Policy = "module"
)

// Policies lists every known policy in a stable order.
func Policies() []Policy {
	return []Policy{PolicyPrefix, PolicySegment, PolicyModule}
}

// ParsePolicy maps a configuration string onto a Policy.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Policies(), p) {
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Request is what the host bundler knows when it asks for a name: the chunks
// loading a module, the module itself and the number of entries in the build.
type Request struct {
	Module       string
	Chunks       []Chunk
	TotalEntries int
}

// Decision maps a group name to the chunks extracted into it. An empty
// Decision means "do not extract".
type Decision map[string][]string

// Extract reports whether anything should be split out.
func (d Decision) Extract() bool {
	return len(d) > 0
}

// GroupNames returns the decision's group names sorted.
func (d Decision) GroupNames() []string {
	return slices.Sorted(maps.Keys(d))
}

// Single returns the group name when the decision names exactly one group.
func (d Decision) Single() (string, bool) {
	if len(d) != 1 {
		return "", false
	}
	for name := range d {
		return name, true
	}
	return "", false
}

// Namer computes a Decision for one request. Implementations are pure.
type Namer interface {
	Policy() Policy
	Name(req Request) Decision
}

// Options configures New.
type Options struct {
	CommonName string
	CacheGroup string
}

// New returns the Namer for policy.
func New(policy Policy, opts Options) (Namer, error) {
	if opts.CommonName == "" {
		opts.CommonName = DefaultCommonName
	}
	switch policy {
	case PolicyPrefix:
		return PrefixNamer{CommonName: opts.CommonName}, nil
	case PolicySegment:
		return SegmentNamer{}, nil
	case PolicyModule:
		if opts.CacheGroup == "" {
			opts.CacheGroup = DefaultCacheGroup
		}
		return ModuleNamer{CacheGroup: opts.CacheGroup}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
}
