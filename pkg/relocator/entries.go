package relocator

import (
	"bytes"
	"io"
	"path"

	"github.com/arthur-debert/jarreloc/pkg/errors"
	"github.com/arthur-debert/jarreloc/pkg/filesystem"
	"github.com/arthur-debert/jarreloc/pkg/manifest"
	"github.com/arthur-debert/jarreloc/pkg/types"
)

// ensureDirectory creates the directory name and its ancestors, parents
// first. Directories already in the visited set are not touched again.
func (r *Relocator) ensureDirectory(name string) error {
	if name == "" || name == "." || r.visited.has(name) {
		return nil
	}
	if parent := path.Dir(name); parent != "." && !r.visited.has(parent) {
		if err := r.ensureDirectory(parent); err != nil {
			return err
		}
	}

	if !r.dryRun {
		if err := r.fs.MkdirAll(r.abs(name), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", name).
				WithDetail("path", r.abs(name))
		}
	}
	r.visited.add(name)
	r.logger.Trace().Str("directory", name).Msg("Ensured directory")
	return nil
}

func (r *Relocator) rewriteClass(e entry, dest string) error {
	data, err := r.fs.ReadFile(e.path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", e.name).
			WithDetail("entry", e.name)
	}

	out, err := r.rewriter.Rewrite(data, r.remapper)
	if err != nil {
		return errors.Wrapf(err, errors.ErrClassRewrite, "error processing class %s", e.name).
			WithDetail("entry", e.name)
	}

	return r.write(e, dest, types.EntryClass, bytes.NewReader(out))
}

func (r *Relocator) rewriteManifest(e entry, dest string) error {
	data, err := r.fs.ReadFile(e.path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", e.name).
			WithDetail("entry", e.name)
	}

	m, err := manifest.ParseBytes(data)
	if err != nil {
		return withEntry(err, e.name)
	}

	return r.write(e, dest, types.EntryManifest, bytes.NewReader(m.WithoutDigests().Bytes()))
}

func (r *Relocator) copyResource(e entry, dest string) error {
	// copying a file onto itself changes nothing
	if r.dryRun || r.abs(dest) == e.path {
		r.commit(e, dest, types.EntryResource)
		return nil
	}

	in, err := r.fs.Open(e.path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "failed to open %s", e.name).
			WithDetail("entry", e.name)
	}
	defer func() { _ = in.Close() }()

	return r.write(e, dest, types.EntryResource, in)
}

// write stores content at dest and records it
func (r *Relocator) write(e entry, dest string, kind types.EntryKind, content io.Reader) error {
	if !r.dryRun {
		if err := filesystem.WriteAtomic(r.fs, r.abs(dest), content, r.atomic); err != nil {
			return withEntry(err, e.name)
		}
	}
	r.commit(e, dest, kind)
	return r.prune(e, dest)
}

func (r *Relocator) commit(e entry, dest string, kind types.EntryKind) {
	r.visited.add(dest)
	r.produced[r.abs(dest)] = true
	r.result.Record(e.name, dest, kind)

	r.logger.Debug().
		Str("entry", e.name).
		Str("destination", dest).
		Str("kind", string(kind)).
		Bool("dry_run", r.dryRun).
		Msg("Relocated entry")
}

// prune removes the source of an entry written elsewhere. A source that
// this run already overwrote with another entry's output is kept.
func (r *Relocator) prune(e entry, dest string) error {
	if !r.pruneSources || r.dryRun || r.abs(dest) == e.path || r.produced[e.path] {
		return nil
	}
	if err := r.fs.Remove(e.path); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove relocated source %s", e.name).
			WithDetail("entry", e.name)
	}
	r.result.SourcesPruned++
	r.logger.Trace().Str("entry", e.name).Msg("Pruned source")
	return nil
}

// dropStale removes a signature file or the jar index, neither of which
// matches the relocated tree any more. A path this run already wrote to
// is left alone.
func (r *Relocator) dropStale(e entry, what string) error {
	r.logger.Debug().Str("entry", e.name).Bool("dry_run", r.dryRun).Msgf("Dropping %s", what)

	if r.dryRun || r.produced[e.path] {
		return nil
	}
	if err := r.fs.Remove(e.path); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s %s", what, e.name).
			WithDetail("entry", e.name)
	}
	return nil
}
