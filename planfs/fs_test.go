package planfs

import (
	"context"
	"errors"
	"os"
	"slices"
	"strings"
	"syscall"
	"testing"

	"bazil.org/fuse"
	"github.com/lsycxyj/disableSplitChunks/chunkname"
	"github.com/lsycxyj/disableSplitChunks/splitplan"
)

func testPlan(t *testing.T) *splitplan.Plan {
	t.Helper()
	g := splitplan.Graph{
		Entries: []string{"blog/a", "blog/b", "shop/c"},
		Modules: []splitplan.Module{
			{ID: "./src/blog/shared.js", Chunks: []string{"blog/a", "blog/b"}},
			{ID: "./src/util.js", Chunks: []string{"blog/a", "blog/b", "shop/c"}},
		},
	}
	namer, err := chunkname.New(chunkname.PolicyPrefix, chunkname.Options{})
	if err != nil {
		t.Fatalf("chunkname.New: %v", err)
	}
	p, err := splitplan.Build(g, namer)
	if err != nil {
		t.Fatalf("splitplan.Build: %v", err)
	}
	return p
}

func lookupPath(t *testing.T, f *FS, parts ...string) any {
	t.Helper()
	root, err := f.Root()
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	var n any = root
	for _, part := range parts {
		dir, ok := n.(*Dir)
		if !ok {
			t.Fatalf("%s: parent is not a directory", part)
		}
		n, err = dir.Lookup(context.Background(), part)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", part, err)
		}
	}
	return n
}

func readFile(t *testing.T, f *FS, parts ...string) string {
	t.Helper()
	file, ok := lookupPath(t, f, parts...).(*File)
	if !ok {
		t.Fatalf("%s is not a file", strings.Join(parts, "/"))
	}
	data, err := file.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return string(data)
}

func TestRootListing(t *testing.T) {
	t.Parallel()
	f, err := NewFS(testPlan(t))
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}

	root := lookupPath(t, f).(*Dir)
	dirents, err := root.ReadDirAll(context.Background())
	if err != nil {
		t.Fatalf("ReadDirAll: %v", err)
	}
	var names []string
	for _, d := range dirents {
		names = append(names, d.Name)
	}
	if want := []string{"chunks", "groups", "manifest.json"}; !slices.Equal(names, want) {
		t.Errorf("root entries = %v, want %v", names, want)
	}

	var attr fuse.Attr
	if err := root.Attr(context.Background(), &attr); err != nil {
		t.Fatalf("Attr: %v", err)
	}
	if attr.Inode != 1 {
		t.Errorf("root inode = %d, want 1", attr.Inode)
	}
	if !attr.Mode.IsDir() {
		t.Errorf("root mode = %v, want directory", attr.Mode)
	}
}

func TestGroupFiles(t *testing.T) {
	t.Parallel()
	f, err := NewFS(testPlan(t))
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}

	groups := lookupPath(t, f, "groups").(*Dir)
	dirents, err := groups.ReadDirAll(context.Background())
	if err != nil {
		t.Fatalf("ReadDirAll: %v", err)
	}
	var names []string
	for _, d := range dirents {
		if d.Type != fuse.DT_Dir {
			t.Errorf("%s: type = %v, want dir", d.Name, d.Type)
		}
		names = append(names, d.Name)
	}
	if want := []string{"blog_", "common"}; !slices.Equal(names, want) {
		t.Fatalf("groups = %v, want %v", names, want)
	}

	if got, want := readFile(t, f, "groups", "blog_", "chunks"), "blog/a\nblog/b\n"; got != want {
		t.Errorf("blog_ chunks = %q, want %q", got, want)
	}
	if got, want := readFile(t, f, "groups", "common", "modules"), "./src/util.js\n"; got != want {
		t.Errorf("common modules = %q, want %q", got, want)
	}
}

func TestChunkFiles(t *testing.T) {
	t.Parallel()
	f, err := NewFS(testPlan(t))
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}

	if got, want := readFile(t, f, "chunks", "blog_a"), "blog_\ncommon\n"; got != want {
		t.Errorf("blog_a = %q, want %q", got, want)
	}
	if got, want := readFile(t, f, "chunks", "shop_c"), "common\n"; got != want {
		t.Errorf("shop_c = %q, want %q", got, want)
	}

	file := lookupPath(t, f, "chunks", "shop_c").(*File)
	var attr fuse.Attr
	if err := file.Attr(context.Background(), &attr); err != nil {
		t.Fatalf("Attr: %v", err)
	}
	if attr.Size != uint64(len("common\n")) {
		t.Errorf("size = %d, want %d", attr.Size, len("common\n"))
	}
	if attr.Mode != os.FileMode(0o444) {
		t.Errorf("mode = %v, want read-only", attr.Mode)
	}
}

func TestManifestRoundTrip(t *testing.T) {
	t.Parallel()
	p := testPlan(t)
	f, err := NewFS(p)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}

	data := readFile(t, f, "manifest.json")
	got, err := splitplan.Decode(strings.NewReader(data), splitplan.FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Digest != p.Digest {
		t.Errorf("digest = %s, want %s", got.Digest, p.Digest)
	}
}

func TestLookupMissing(t *testing.T) {
	t.Parallel()
	f, err := NewFS(testPlan(t))
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	root := lookupPath(t, f).(*Dir)
	if _, err := root.Lookup(context.Background(), "nope"); !errors.Is(err, syscall.ENOENT) {
		t.Errorf("Lookup(nope) error = %v, want ENOENT", err)
	}
}

func TestEmptyPlan(t *testing.T) {
	t.Parallel()
	f, err := NewFS(&splitplan.Plan{Policy: chunkname.PolicyPrefix, Groups: []splitplan.ChunkGroup{}})
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	groups := lookupPath(t, f, "groups").(*Dir)
	dirents, err := groups.ReadDirAll(context.Background())
	if err != nil {
		t.Fatalf("ReadDirAll: %v", err)
	}
	if len(dirents) != 0 {
		t.Errorf("groups = %v, want none", dirents)
	}
}

func TestNewFSRejectsUnsafeNames(t *testing.T) {
	t.Parallel()

	group := func(name string, chunks ...string) splitplan.ChunkGroup {
		return splitplan.ChunkGroup{Name: name, Chunks: chunks, Modules: []string{"./x.js"}}
	}
	tests := []struct {
		name    string
		groups  []splitplan.ChunkGroup
		wantErr error
	}{
		{
			name:    "separator in group",
			groups:  []splitplan.ChunkGroup{group("x/y", "a", "b")},
			wantErr: splitplan.ErrUnsafeGroupName,
		},
		{
			name:    "dot dot group",
			groups:  []splitplan.ChunkGroup{group("..", "..a", "..b")},
			wantErr: splitplan.ErrUnsafeGroupName,
		},
		{
			name:    "dot group",
			groups:  []splitplan.ChunkGroup{group(".", "a", "b")},
			wantErr: splitplan.ErrUnsafeGroupName,
		},
		{
			name:    "empty group",
			groups:  []splitplan.ChunkGroup{group("", "a", "b")},
			wantErr: splitplan.ErrEmptyGroupName,
		},
		{
			name:    "duplicate group",
			groups:  []splitplan.ChunkGroup{group("common", "a", "b"), group("common", "a", "c")},
			wantErr: ErrNameCollision,
		},
		{
			name:    "chunk names collide",
			groups:  []splitplan.ChunkGroup{group("blog_", "blog/a", "blog_a")},
			wantErr: ErrNameCollision,
		},
		{
			name:    "chunk named dot dot",
			groups:  []splitplan.ChunkGroup{group("x", "..", "a")},
			wantErr: splitplan.ErrUnsafeChunkName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewFS(&splitplan.Plan{Policy: chunkname.PolicyPrefix, Groups: tt.groups})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewFS() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewFSRejectsDotDotGroup(t *testing.T) {
	t.Parallel()
	g := splitplan.Graph{
		Entries: []string{"..a", "..b", "c"},
		Modules: []splitplan.Module{{ID: "shared.js", Chunks: []string{"..a", "..b"}}},
	}
	namer, err := chunkname.New(chunkname.PolicyPrefix, chunkname.Options{})
	if err != nil {
		t.Fatal(err)
	}
	p, err := splitplan.Build(g, namer)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewFS(p); !errors.Is(err, splitplan.ErrUnsafeGroupName) {
		t.Errorf("NewFS() error = %v, want %v", err, splitplan.ErrUnsafeGroupName)
	}
}
