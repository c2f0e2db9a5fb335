// Package bundler drives esbuild as the host bundler and narrows its
// metafile into a splitplan.Graph.
//
// esbuild does the module graph work: Analyze runs a code splitting build
// with a metafile, and GraphFromMetafile walks every entry output's static
// imports to find out which entries load which input modules. Only entry
// names and module paths leave this package.
package bundler
