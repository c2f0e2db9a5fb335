package chunkname

import (
	"errors"
	"reflect"
	"testing"
)

type hostChunk struct {
	name string
	ids  []int
}

func (h hostChunk) ChunkName() string { return h.name }

func TestNarrow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		records []any
		want    []Chunk
		wantErr error
	}{
		{
			name:    "empty",
			records: nil,
			want:    []Chunk{},
		},
		{
			name:    "strings",
			records: []any{"index", "about"},
			want:    []Chunk{{Name: "index"}, {Name: "about"}},
		},
		{
			name: "decoded json objects",
			records: []any{
				map[string]any{"name": "index", "id": 1.0},
				map[string]any{"name": ""},
			},
			want: []Chunk{{Name: "index"}, {Name: ""}},
		},
		{
			name:    "named host records",
			records: []any{hostChunk{name: "blog/a", ids: []int{3}}, Chunk{Name: "blog/b"}, &Chunk{Name: "blog/c"}},
			want:    []Chunk{{Name: "blog/a"}, {Name: "blog/b"}, {Name: "blog/c"}},
		},
		{
			name:    "numeric name",
			records: []any{map[string]any{"name": 42.0}},
			wantErr: ErrInvalidChunk,
		},
		{
			name:    "missing name",
			records: []any{"index", map[string]any{"id": 1.0}},
			wantErr: ErrInvalidChunk,
		},
		{
			name:    "unsupported type",
			records: []any{7},
			wantErr: ErrInvalidChunk,
		},
		{
			name:    "nil pointer",
			records: []any{(*Chunk)(nil)},
			wantErr: ErrInvalidChunk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Narrow(tt.records)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Narrow() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Narrow() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Narrow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"plain":     "plain",
		"a/b":       "a_b",
		`a\b`:       "a_b",
		"a/b\\c/d":  "a_b_c_d",
		"trailing/": "trailing_",
		"":          "",
	}
	for in, want := range tests {
		if got := Sanitize(in); got != want {
			t.Errorf("Sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}
