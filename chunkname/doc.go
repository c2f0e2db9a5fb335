// Package chunkname decides how code shared between entry chunks is
// extracted into a common output and what that output is called.
//
// The package is the pure core of splitchunks. It never touches the module
// graph itself: a host bundler (see package bundler) reports, for every
// module, which entry chunks load it, and a Namer turns that list of chunk
// names into a Decision.
//
// Policies:
//   - PolicyPrefix: the longest common prefix of the chunk names, or the
//     common name when every entry shares the module.
//   - PolicySegment: chunks named "<group>/<rest>" are bucketed under
//     "<group>-common".
//   - PolicyModule: one output per module and chunk combination, named after
//     the cache group, the chunk names and the module basename.
//
// Only one policy is active in a build. A Decision with no groups means the
// module stays where it is; this is an expected outcome, not an error.
//
// Host records are narrowed with Narrow before they reach a Namer, so the
// policies only ever see Chunk values.
package chunkname
