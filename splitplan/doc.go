// Package splitplan turns a bundler's module graph into a split plan.
//
// A Graph lists the build's entries and, for every module, the entry chunks
// that load it. Build asks a chunkname.Namer about each module the way a
// bundler's chunk splitting pass would, merges modules that resolve to the
// same name into one ChunkGroup, and drops groups that serve a single chunk.
//
// Plans carry a random ID and a content digest. The digest only covers the
// policy and the groups, so two runs over the same graph agree on it.
//
// Plans are persisted as JSON or YAML manifests (Save, Load) and can be
// checked after the fact with Validate.
package splitplan
