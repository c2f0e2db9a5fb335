package chunkname

import (
	"fmt"
	"strings"
)

type (
	// Chunk is the only view of a host bundler chunk the naming policies get.
	Chunk struct {
		Name string `json:"name" yaml:"name"`
	}

	// Named is implemented by host records that already expose a name.
	Named interface {
		ChunkName() string
	}
)

// Narrow converts loosely typed host records into Chunks. It accepts plain
// strings, Chunk values, Named implementations and decoded JSON objects with a
// string "name" field. Anything else fails with ErrInvalidChunk.
func Narrow(records []any) ([]Chunk, error) {
	chunks := make([]Chunk, 0, len(records))
	for i, r := range records {
		c, err := narrowOne(r)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
		chunks = append(chunks, c)
	}
	return chunks, nil
}

func narrowOne(r any) (Chunk, error) {
	switch v := r.(type) {
	case string:
		return Chunk{Name: v}, nil
	case Chunk:
		return v, nil
	case *Chunk:
		if v == nil {
			return Chunk{}, ErrInvalidChunk
		}
		return *v, nil
	case Named:
		return Chunk{Name: v.ChunkName()}, nil
	case map[string]any:
		name, ok := v["name"].(string)
		if !ok {
			return Chunk{}, fmt.Errorf("%w: got %T", ErrInvalidChunk, v["name"])
		}
		return Chunk{Name: name}, nil
	default:
		return Chunk{}, fmt.Errorf("%w: got %T", ErrInvalidChunk, r)
	}
}

// FromNames wraps plain names as Chunks.
func FromNames(names ...string) []Chunk {
	chunks := make([]Chunk, len(names))
	for i, n := range names {
		chunks[i] = Chunk{Name: n}
	}
	return chunks
}

// Names returns the chunk names in order.
func Names(chunks []Chunk) []string {
	names := make([]string, len(chunks))
	for i, c := range chunks {
		names[i] = c.Name
	}
	return names
}

var separatorReplacer = strings.NewReplacer("/", "_", "\\", "_")

// Sanitize replaces path separators so a group name is safe to use as a file
// name.
func Sanitize(name string) string {
	return separatorReplacer.Replace(name)
}
