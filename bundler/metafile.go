package bundler

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/lsycxyj/disableSplitChunks/splitplan"
)

type (
	// Metafile is the subset of esbuild's metafile we read.
	Metafile struct {
		Inputs  map[string]MetafileInput  `json:"inputs"`
		Outputs map[string]MetafileOutput `json:"outputs"`
	}

	// MetafileInput is one source file esbuild read.
	MetafileInput struct {
		Bytes int `json:"bytes"`
	}

	// MetafileImport is an import from one output file to another. Kind is
	// "import-statement" for static imports.
	MetafileImport struct {
		Path     string `json:"path"`
		Kind     string `json:"kind"`
		External bool   `json:"external,omitempty"`
	}

	// MetafileOutput is one written file. EntryPoint is set for entry outputs.
	MetafileOutput struct {
		Bytes      int                     `json:"bytes"`
		Inputs     map[string]InputContrib `json:"inputs"`
		Imports    []MetafileImport        `json:"imports"`
		EntryPoint string                  `json:"entryPoint,omitempty"`
	}

	// InputContrib is how much of an input ended up in an output.
	InputContrib struct {
		BytesInOutput int `json:"bytesInOutput"`
	}

	// Entry is a named build input.
	Entry struct {
		Site string
		Path string
	}
)

// staticImport is the import kind esbuild uses between an entry and the
// shared chunks it needs before it can run.
const staticImport = "import-statement"

// ParseMetafile decodes esbuild's metafile JSON.
func ParseMetafile(data string) (*Metafile, error) {
	var m Metafile
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMetafile, err)
	}
	if m.Outputs == nil {
		return nil, fmt.Errorf("%w: no outputs", ErrBadMetafile)
	}
	return &m, nil
}

// GraphFromMetafile assigns every input module to the entries whose initial
// load includes it. Entry paths are matched against the metafile's entryPoint
// values, which esbuild reports relative to the working directory.
func GraphFromMetafile(m *Metafile, entries []Entry) (splitplan.Graph, error) {
	bySource := make(map[string]string, len(entries))
	g := splitplan.Graph{}
	for _, e := range entries {
		bySource[metaPath(e.Path)] = e.Site
		g.Entries = append(g.Entries, e.Site)
	}

	loadedBy := map[string][]string{}
	for _, outPath := range sortedKeys(m.Outputs) {
		out := m.Outputs[outPath]
		if out.EntryPoint == "" {
			continue
		}
		site, ok := bySource[metaPath(out.EntryPoint)]
		if !ok {
			return splitplan.Graph{}, fmt.Errorf("%w: %s", ErrUnknownEntry, out.EntryPoint)
		}
		for _, reached := range staticClosure(m, outPath) {
			for input := range m.Outputs[reached].Inputs {
				if !slices.Contains(loadedBy[input], site) {
					loadedBy[input] = append(loadedBy[input], site)
				}
			}
		}
	}

	for _, input := range sortedKeys(loadedBy) {
		g.Modules = append(g.Modules, splitplan.Module{ID: input, Chunks: loadedBy[input]})
	}
	return g.Sorted(), g.Check()
}

// staticClosure returns start and every output reachable from it through
// static imports, in visit order.
func staticClosure(m *Metafile, start string) []string {
	seen := map[string]bool{start: true}
	order := []string{start}
	for i := 0; i < len(order); i++ {
		for _, imp := range m.Outputs[order[i]].Imports {
			if imp.External || imp.Kind != staticImport || seen[imp.Path] {
				continue
			}
			if _, ok := m.Outputs[imp.Path]; !ok {
				continue
			}
			seen[imp.Path] = true
			order = append(order, imp.Path)
		}
	}
	return order
}

func metaPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
