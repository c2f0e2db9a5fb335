// Package main provides the splitchunks command-line interface.
//
// splitchunks names the shared chunks of a multi-entry JavaScript build. It
// bundles the configured entries with esbuild, reads which modules each entry
// loads from the metafile, and groups modules used by more than one entry
// under a name chosen by the configured policy.
//
// The main binary supports multiple subcommands:
//   - name: Apply a naming policy to chunk names
//   - plan: Compute a split plan without writing the bundle
//   - build: Bundle the entries and write splitchunks.json
//   - validate: Check a plan manifest
//   - init: Write a default splitchunks.toml
//   - mount: Browse a plan manifest through FUSE
package main
