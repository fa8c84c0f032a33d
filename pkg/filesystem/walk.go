package filesystem

import (
	"path/filepath"

	"github.com/arthur-debert/jarreloc/pkg/errors"
	"github.com/arthur-debert/jarreloc/pkg/types"
)

// ListFiles returns the path of every regular file under root, descending
// into subdirectories depth-first. Entries within a directory are visited
// in lexical order so the result is deterministic. Symlinks and other
// non-regular files are left out.
func ListFiles(fsys types.FS, root string) ([]string, error) {
	var files []string
	if err := listFiles(fsys, root, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func listFiles(fsys types.FS, dir string, files *[]string) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirRead, "failed to read directory %s", dir).
			WithDetail("path", dir)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := listFiles(fsys, path, files); err != nil {
				return err
			}
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		*files = append(*files, path)
	}
	return nil
}
