package splitplan

import (
	"fmt"
	"slices"
	"strings"
)

type (
	// Module is one bundled module and the chunks that load it.
	Module struct {
		ID     string   `json:"id" yaml:"id"`
		Chunks []string `json:"chunks" yaml:"chunks"`
	}

	// Graph is the host independent view of a build.
	Graph struct {
		Entries []string `json:"entries" yaml:"entries"`
		Modules []Module `json:"modules" yaml:"modules"`
	}
)

// Check rejects graphs Build cannot plan for deterministically.
func (g Graph) Check() error {
	seen := make(map[string]bool, len(g.Entries))
	for _, e := range g.Entries {
		if strings.TrimSpace(e) == "" {
			return ErrEmptyEntry
		}
		if seen[e] {
			return fmt.Errorf("%w: %q", ErrDuplicateEntry, e)
		}
		seen[e] = true
	}
	ids := make(map[string]bool, len(g.Modules))
	for _, m := range g.Modules {
		if ids[m.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateModule, m.ID)
		}
		ids[m.ID] = true
	}
	return nil
}

// Sorted returns a copy with modules ordered by id and each module's chunks
// ordered by entry declaration, unknown chunks last in name order.
func (g Graph) Sorted() Graph {
	rank := make(map[string]int, len(g.Entries))
	for i, e := range g.Entries {
		rank[e] = i
	}
	out := Graph{
		Entries: slices.Clone(g.Entries),
		Modules: make([]Module, len(g.Modules)),
	}
	for i, m := range g.Modules {
		chunks := slices.Clone(m.Chunks)
		slices.SortStableFunc(chunks, func(a, b string) int {
			ra, okA := rank[a]
			rb, okB := rank[b]
			switch {
			case okA && okB:
				return ra - rb
			case okA:
				return -1
			case okB:
				return 1
			default:
				return strings.Compare(a, b)
			}
		})
		out.Modules[i] = Module{ID: m.ID, Chunks: slices.Compact(chunks)}
	}
	slices.SortFunc(out.Modules, func(a, b Module) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Shared returns the modules loaded by more than one chunk.
func (g Graph) Shared() []Module {
	var shared []Module
	for _, m := range g.Modules {
		if len(m.Chunks) > 1 {
			shared = append(shared, m)
		}
	}
	return shared
}
