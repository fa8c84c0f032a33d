package testutil

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/arthur-debert/jarreloc/pkg/filesystem"
	"github.com/arthur-debert/jarreloc/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// TestRoot is the root directory in-memory trees are built under
const TestRoot = "/jar"

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// Tree maps slash-separated names relative to a root to file content.
type Tree map[string]string

// WriteTree creates every file of tree under root, creating parent
// directories as needed.
func WriteTree(t *testing.T, fsys types.FS, root string, tree Tree) {
	t.Helper()

	for name, content := range tree {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, fsys.WriteFile(path, []byte(content), 0644))
	}
}

// ReadTree returns every regular file under root as a Tree.
func ReadTree(t *testing.T, fsys types.FS, root string) Tree {
	t.Helper()

	files, err := filesystem.ListFiles(fsys, root)
	require.NoError(t, err)

	tree := Tree{}
	for _, path := range files {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		data, err := fsys.ReadFile(path)
		require.NoError(t, err)
		tree[filepath.ToSlash(rel)] = string(data)
	}
	return tree
}

// Names returns the sorted names of a tree
func (tr Tree) Names() []string {
	names := make([]string, 0, len(tr))
	for name := range tr {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithPrefix returns the names in tree that start with prefix
func (tr Tree) WithPrefix(prefix string) []string {
	var names []string
	for _, name := range tr.Names() {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names
}
