// Package types defines the core types and interfaces used throughout jarreloc.
// This includes the FS boundary, the Remapper and SymbolRewriter capabilities
// the relocator is built around, and the RelocationResult it reports.
package types
