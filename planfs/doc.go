// Package planfs exposes a split plan as a read-only FUSE filesystem.
//
// Layout:
//   - /manifest.json: the plan as written by splitplan.Plan.Save
//   - /groups/<group>/chunks: member chunks, one per line
//   - /groups/<group>/modules: modules moved into the group, one per line
//   - /chunks/<chunk>: groups the chunk loads, one per line
//
// Chunk names may contain path separators; their file names are sanitized
// with chunkname.Sanitize. The tree is built once in NewFS and never
// changes, so nodes need no locking.
//
// The main entry point is NewFS() which creates a filesystem that can be
// served with bazil.org/fuse.
package planfs
