package types

import (
	"io"
	"io/fs"
)

// FS is the filesystem interface required for relocation runs
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Open(name string) (io.ReadCloser, error)
	Create(name string) (io.WriteCloser, error)

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Rename(oldpath, newpath string) error
	Remove(name string) error
}

// Remapper maps a slash-delimited logical name to its relocated form.
// Implementations must be pure: the same input always yields the same
// output, and names with no applicable rule are returned unchanged.
type Remapper interface {
	Map(name string) string
}

// RemapperFunc adapts an ordinary function to the Remapper interface
type RemapperFunc func(name string) string

// Map calls f(name)
func (f RemapperFunc) Map(name string) string {
	return f(name)
}

// IdentityRemapper returns every name unchanged
var IdentityRemapper Remapper = RemapperFunc(func(name string) string { return name })

// SymbolRewriter rewrites the symbolic references embedded in compiled
// code so they agree with the names produced by remapper.
type SymbolRewriter interface {
	Rewrite(data []byte, remapper Remapper) ([]byte, error)
}

// SymbolRewriterFunc adapts an ordinary function to the SymbolRewriter interface
type SymbolRewriterFunc func(data []byte, remapper Remapper) ([]byte, error)

// Rewrite calls f(data, remapper)
func (f SymbolRewriterFunc) Rewrite(data []byte, remapper Remapper) ([]byte, error) {
	return f(data, remapper)
}
