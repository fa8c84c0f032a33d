// Package relocator relocates an exploded jar in place.
//
// Every regular file under the root is classified by its root-relative
// name and then dropped, skipped, rewritten or copied to the path the
// remapper gives it:
//
//   - signature files (META-INF/*.SF, *.DSA, *.RSA, SIG-*) are removed,
//     since relocation invalidates them
//   - META-INF/INDEX.LIST is removed, since it still lists the old packages
//   - class files are rewritten through a SymbolRewriter and always written
//   - META-INF/MANIFEST.MF is rewritten without its per-entry digests
//   - anything else is copied verbatim unless an earlier entry already
//     produced the same destination
//
// All writes go through a temp sibling and a rename, so a reader never
// sees a partially written file. The first I/O or rewrite failure stops
// the run; partial output may then exist and the caller is expected to
// re-run from a clean input.
package relocator
