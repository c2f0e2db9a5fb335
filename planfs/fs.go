package planfs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"slices"
	"strings"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/lsycxyj/disableSplitChunks/splitplan"
)

// node is one entry of the prebuilt tree.
type node struct {
	inode    uint64
	dir      bool
	children []string // sorted base names, directories only
	data     []byte
}

// FS implements the plan filesystem.
type FS struct {
	Plan    *splitplan.Plan
	nodes   map[string]*node
	inodes  inodeAllocator
	modTime time.Time
}

// NewFS builds the tree for p.
func NewFS(p *splitplan.Plan) (*FS, error) {
	f := &FS{
		Plan:    p,
		nodes:   map[string]*node{},
		modTime: p.CreatedAt,
	}
	if f.modTime.IsZero() {
		f.modTime = time.Now()
	}

	var manifest bytes.Buffer
	if err := p.Encode(&manifest, splitplan.FormatJSON); err != nil {
		return nil, err
	}

	f.addDir("/")
	f.addFile("/manifest.json", manifest.Bytes())
	f.addDir("/groups")
	for _, g := range p.Groups {
		if err := splitplan.CheckGroupName(g.Name); err != nil {
			return nil, err
		}
		dir := "/groups/" + g.Name
		if _, exists := f.nodes[dir]; exists {
			return nil, fmt.Errorf("%w: %q", ErrNameCollision, g.Name)
		}
		f.addDir(dir)
		f.addFile(dir+"/chunks", lines(g.Chunks))
		f.addFile(dir+"/modules", lines(g.Modules))
	}
	f.addDir("/chunks")
	for _, c := range p.Chunks() {
		name, err := splitplan.ChunkFileName(c)
		if err != nil {
			return nil, err
		}
		file := "/chunks/" + name
		if _, exists := f.nodes[file]; exists {
			return nil, fmt.Errorf("%w: %q", ErrNameCollision, c)
		}
		f.addFile(file, lines(p.GroupsFor(c)))
	}
	return f, nil
}

func (f *FS) addDir(p string) {
	f.add(p, &node{dir: true})
}

func (f *FS) addFile(p string, data []byte) {
	f.add(p, &node{data: data})
}

func (f *FS) add(p string, n *node) {
	if _, exists := f.nodes[p]; exists {
		return
	}
	n.inode = f.inodes.next()
	f.nodes[p] = n
	if p == "/" {
		return
	}
	parent := f.nodes[path.Dir(p)]
	name := path.Base(p)
	i, _ := slices.BinarySearch(parent.children, name)
	parent.children = slices.Insert(parent.children, i, name)
}

func lines(items []string) []byte {
	if len(items) == 0 {
		return nil
	}
	return []byte(strings.Join(items, "\n") + "\n")
}

// Root returns the root directory node
func (f *FS) Root() (fs.Node, error) {
	return &Dir{fs: f, path: "/"}, nil
}

// Dir is a directory of the plan tree.
type Dir struct {
	fs   *FS
	path string
}

// Attr returns directory attributes
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	n := d.fs.nodes[d.path]
	a.Inode = n.inode
	a.Mode = os.ModeDir | 0o555
	a.Mtime = d.fs.modTime
	a.Ctime = d.fs.modTime
	a.Atime = d.fs.modTime
	return nil
}

// Lookup resolves names to nodes
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	p := path.Join(d.path, name)
	n, ok := d.fs.nodes[p]
	if !ok {
		return nil, syscall.ENOENT
	}
	if n.dir {
		return &Dir{fs: d.fs, path: p}, nil
	}
	return &File{fs: d.fs, path: p}, nil
}

// ReadDirAll lists directory contents
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	n := d.fs.nodes[d.path]
	dirents := make([]fuse.Dirent, 0, len(n.children))
	for _, name := range n.children {
		child := d.fs.nodes[path.Join(d.path, name)]
		typ := fuse.DT_File
		if child.dir {
			typ = fuse.DT_Dir
		}
		dirents = append(dirents, fuse.Dirent{Inode: child.inode, Name: name, Type: typ})
	}
	return dirents, nil
}

// File is a read-only file of the plan tree.
type File struct {
	fs   *FS
	path string
}

// Attr returns file attributes
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	n := f.fs.nodes[f.path]
	a.Inode = n.inode
	a.Mode = 0o444
	a.Size = uint64(len(n.data))
	a.Mtime = f.fs.modTime
	a.Ctime = f.fs.modTime
	a.Atime = f.fs.modTime
	return nil
}

// ReadAll reads the entire file content
func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	return f.fs.nodes[f.path].data, nil
}
