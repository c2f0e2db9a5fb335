package splitplan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lsycxyj/disableSplitChunks/chunkname"
)

// rawStats mirrors the stats file written by a host bundler. Entries and
// module chunks may be plain names or objects with a "name" field.
type rawStats struct {
	Entries []any `json:"entries"`
	Modules []struct {
		ID     string `json:"id"`
		Chunks []any  `json:"chunks"`
	} `json:"modules"`
}

// DecodeStats reads a stats document and narrows it to a Graph.
func DecodeStats(r io.Reader) (Graph, error) {
	var raw rawStats
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Graph{}, err
	}
	entries, err := chunkname.Narrow(raw.Entries)
	if err != nil {
		return Graph{}, fmt.Errorf("entries: %w", err)
	}
	g := Graph{Entries: chunkname.Names(entries)}
	for _, m := range raw.Modules {
		chunks, err := chunkname.Narrow(m.Chunks)
		if err != nil {
			return Graph{}, fmt.Errorf("module %q: %w", m.ID, err)
		}
		g.Modules = append(g.Modules, Module{ID: m.ID, Chunks: chunkname.Names(chunks)})
	}
	return g, g.Check()
}

// LoadStats reads a stats file from disk.
func LoadStats(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, err
	}
	defer f.Close()
	return DecodeStats(f)
}
