package filesystem

import (
	"bytes"
	"io"

	"github.com/arthur-debert/jarreloc/pkg/errors"
	"github.com/arthur-debert/jarreloc/pkg/types"
)

// TempSuffix names the sibling a destination is staged in before it is
// renamed into place.
const TempSuffix = ".tmp"

// AtomicOptions controls WriteAtomic.
type AtomicOptions struct {
	// KeepFailedTemp leaves the staged temp file behind when a write fails
	// so it can be inspected. By default it is removed.
	KeepFailedTemp bool
}

// TempPath returns the staging path used for dest
func TempPath(dest string) string {
	return dest + TempSuffix
}

// WriteAtomic streams r into the temp sibling of dest and renames it over
// dest, replacing any existing file. A reader of dest sees either the old
// content or the complete new content, never a partial write.
func WriteAtomic(fsys types.FS, dest string, r io.Reader, opts AtomicOptions) error {
	tmpPath := TempPath(dest)

	out, err := fsys.Create(tmpPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create temp file %s", tmpPath).
			WithDetail("path", dest)
	}

	closed := false
	committed := false
	defer func() {
		if !closed {
			_ = out.Close()
		}
		if !committed && !opts.KeepFailedTemp {
			_ = fsys.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(out, r); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", tmpPath).
			WithDetail("path", dest)
	}

	closed = true
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to close %s", tmpPath).
			WithDetail("path", dest)
	}

	if err := fsys.Rename(tmpPath, dest); err != nil {
		return errors.Wrapf(err, errors.ErrFileRename, "failed to move %s into place", tmpPath).
			WithDetail("path", dest)
	}
	committed = true
	return nil
}

// WriteBytesAtomic is WriteAtomic for content already held in memory
func WriteBytesAtomic(fsys types.FS, dest string, data []byte, opts AtomicOptions) error {
	return WriteAtomic(fsys, dest, bytes.NewReader(data), opts)
}
