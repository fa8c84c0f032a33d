// Package testutil provides utilities for testing jarreloc components.
//
// Key components:
//   - NewTestFS: afero-backed in-memory filesystem
//   - Tree, WriteTree, ReadTree: declarative fixture trees
//   - RecordingFS: call recording and fault injection around any types.FS
//   - MockSymbolRewriter, LineRewriter, PrefixRemapper: collaborator fakes
//
// All test data should be defined inline, not in external files.
package testutil
