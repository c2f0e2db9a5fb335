package splitplan

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lsycxyj/disableSplitChunks/chunkname"
	"github.com/zeebo/xxh3"
)

type (
	// ChunkGroup is a shared output: the modules moved into it and the
	// chunks that load it.
	ChunkGroup struct {
		Name    string   `json:"name" yaml:"name"`
		Chunks  []string `json:"chunks" yaml:"chunks"`
		Modules []string `json:"modules" yaml:"modules"`
	}

	// Plan is the outcome of one split pass.
	Plan struct {
		ID        string           `json:"id" yaml:"id"`
		CreatedAt time.Time        `json:"created_at" yaml:"created_at"`
		Policy    chunkname.Policy `json:"policy" yaml:"policy"`
		Entries   []string         `json:"entries" yaml:"entries"`
		Groups    []ChunkGroup     `json:"groups" yaml:"groups"`
		Digest    string           `json:"digest" yaml:"digest"`
	}
)

// Build runs namer over every module of g and collects the resulting groups.
// Chunks that are not declared entries take no part in naming.
func Build(g Graph, namer chunkname.Namer) (*Plan, error) {
	if err := g.Check(); err != nil {
		return nil, err
	}
	g = g.Sorted()

	isEntry := make(map[string]bool, len(g.Entries))
	for _, e := range g.Entries {
		isEntry[e] = true
	}

	groups := map[string]*ChunkGroup{}
	for _, m := range g.Modules {
		// Only initial chunks are named; async chunks load on demand.
		initial := slices.DeleteFunc(slices.Clone(m.Chunks), func(c string) bool {
			return !isEntry[c]
		})
		d := namer.Name(chunkname.Request{
			Module:       m.ID,
			Chunks:       chunkname.FromNames(initial...),
			TotalEntries: len(g.Entries),
		})
		for _, name := range d.GroupNames() {
			group, ok := groups[name]
			if !ok {
				group = &ChunkGroup{Name: name}
				groups[name] = group
			}
			for _, c := range d[name] {
				if !slices.Contains(group.Chunks, c) {
					group.Chunks = append(group.Chunks, c)
				}
			}
			group.Modules = append(group.Modules, m.ID)
		}
	}

	p := &Plan{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Policy:    namer.Policy(),
		Entries:   g.Entries,
		Groups:    []ChunkGroup{},
	}
	for _, group := range groups {
		// Nothing to gain from extracting code used by one chunk.
		if len(group.Chunks) < 2 {
			continue
		}
		p.Groups = append(p.Groups, *group)
	}
	slices.SortFunc(p.Groups, func(a, b ChunkGroup) int {
		return strings.Compare(a.Name, b.Name)
	})
	p.Digest = p.ComputeDigest()
	return p, nil
}

// ComputeDigest fingerprints the policy and the groups. ID and CreatedAt are
// not part of it.
func (p *Plan) ComputeDigest() string {
	var sb strings.Builder
	sb.WriteString(string(p.Policy))
	for _, g := range p.Groups {
		sb.WriteString("\n")
		sb.WriteString(g.Name)
		sb.WriteString("\x00")
		sb.WriteString(strings.Join(g.Chunks, "\x00"))
		sb.WriteString("\x01")
		sb.WriteString(strings.Join(g.Modules, "\x00"))
	}
	return fmt.Sprintf("%x", xxh3.Hash128([]byte(sb.String())).Bytes())
}

// Lookup returns the group called name.
func (p *Plan) Lookup(name string) (ChunkGroup, bool) {
	i := slices.IndexFunc(p.Groups, func(g ChunkGroup) bool { return g.Name == name })
	if i < 0 {
		return ChunkGroup{}, false
	}
	return p.Groups[i], true
}

// GroupsFor returns the names of the groups chunk loads, in plan order.
func (p *Plan) GroupsFor(chunk string) []string {
	var names []string
	for _, g := range p.Groups {
		if slices.Contains(g.Chunks, chunk) {
			names = append(names, g.Name)
		}
	}
	return names
}

// Chunks returns every chunk that loads at least one group, sorted.
func (p *Plan) Chunks() []string {
	var chunks []string
	for _, g := range p.Groups {
		chunks = append(chunks, g.Chunks...)
	}
	slices.Sort(chunks)
	return slices.Compact(chunks)
}

// ModuleCount is the number of modules moved into shared groups.
func (p *Plan) ModuleCount() int {
	n := 0
	for _, g := range p.Groups {
		n += len(g.Modules)
	}
	return n
}
