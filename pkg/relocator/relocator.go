package relocator

import (
	"path"
	"path/filepath"
	"time"

	"github.com/arthur-debert/jarreloc/pkg/classfile"
	"github.com/arthur-debert/jarreloc/pkg/errors"
	"github.com/arthur-debert/jarreloc/pkg/filesystem"
	"github.com/arthur-debert/jarreloc/pkg/jarmeta"
	"github.com/arthur-debert/jarreloc/pkg/logging"
	"github.com/arthur-debert/jarreloc/pkg/types"
	"github.com/rs/zerolog"
)

// Options contains configuration for a relocator
type Options struct {
	// Root is the exploded jar directory, relocated in place
	Root string
	// Remapper gives every entry its relocated name. Defaults to the identity.
	Remapper types.Remapper
	// Rewriter rewrites class files. Defaults to the classfile rewriter.
	Rewriter types.SymbolRewriter

	// PruneSources removes an entry's original file once it has been
	// written elsewhere, unless this run produced that file.
	PruneSources bool
	// KeepFailedTemp leaves temp files of failed writes in place
	KeepFailedTemp bool
	// DryRun classifies and remaps every entry without touching the tree
	DryRun bool

	Logger zerolog.Logger
	// Filesystem operations interface for testing
	FS types.FS
}

// Relocator runs relocations over one root. A Relocator is not safe for
// concurrent use and runs on the same root must be serialized.
type Relocator struct {
	root         string
	remapper     types.Remapper
	rewriter     types.SymbolRewriter
	pruneSources bool
	dryRun       bool
	atomic       filesystem.AtomicOptions
	logger       zerolog.Logger
	fs           types.FS

	// per-run state
	visited  visitedSet
	produced map[string]bool
	result   *types.RelocationResult
}

// entry is one file found under the root
type entry struct {
	// name is the root-relative, slash-separated name
	name string
	// path is the filesystem path
	path string
}

// New creates a relocator
func New(opts Options) *Relocator {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("relocator")
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	remapper := opts.Remapper
	if remapper == nil {
		remapper = types.IdentityRemapper
	}

	rewriter := opts.Rewriter
	if rewriter == nil {
		rewriter = classfile.New()
	}

	return &Relocator{
		root:         filepath.Clean(opts.Root),
		remapper:     remapper,
		rewriter:     rewriter,
		pruneSources: opts.PruneSources,
		dryRun:       opts.DryRun,
		atomic:       filesystem.AtomicOptions{KeepFailedTemp: opts.KeepFailedTemp},
		logger:       logger,
		fs:           fs,
	}
}

// Relocate processes every file under the root. The file list is taken
// up front, so files written during the run are never picked up again.
func (r *Relocator) Relocate() (*types.RelocationResult, error) {
	done := logging.LogOperationStart(r.logger, "relocate")
	defer done()
	start := time.Now()

	if err := r.checkRoot(); err != nil {
		return nil, err
	}

	files, err := filesystem.ListFiles(r.fs, r.root)
	if err != nil {
		return nil, err
	}
	r.reset()

	r.logger.Debug().
		Str("root", r.root).
		Int("files", len(files)).
		Bool("dry_run", r.dryRun).
		Msg("Relocating tree")

	for _, p := range files {
		e, err := r.newEntry(p)
		if err != nil {
			return nil, err
		}
		if err := r.process(e); err != nil {
			return nil, err
		}
	}

	r.result.Duration = time.Since(start)
	r.logger.Info().
		Str("root", r.root).
		Int("classes", r.result.Classes).
		Int("manifests", r.result.Manifests).
		Int("resources", r.result.Resources).
		Int("skipped", r.result.Skipped()).
		Int("pruned", r.result.SourcesPruned).
		Dur("duration", r.result.Duration).
		Msg("Relocation complete")

	return r.result, nil
}

func (r *Relocator) reset() {
	r.visited = newVisitedSet()
	r.produced = make(map[string]bool)
	r.result = &types.RelocationResult{Root: r.root, DryRun: r.dryRun}
}

func (r *Relocator) checkRoot() error {
	info, err := r.fs.Stat(r.root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrRootInvalid, "cannot access root %s", r.root).
			WithDetail("root", r.root)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrRootInvalid, "root %s is not a directory", r.root).
			WithDetail("root", r.root)
	}
	return nil
}

func (r *Relocator) newEntry(p string) (entry, error) {
	rel, err := filepath.Rel(r.root, p)
	if err != nil {
		return entry{}, errors.Wrapf(err, errors.ErrInternal, "%s is outside root %s", p, r.root)
	}
	return entry{name: filepath.ToSlash(rel), path: p}, nil
}

// abs returns the filesystem path of a root-relative name
func (r *Relocator) abs(name string) string {
	return filepath.Join(r.root, filepath.FromSlash(name))
}

func (r *Relocator) process(e entry) error {
	switch {
	case jarmeta.IsIndexList(e.name):
		r.result.IndexDropped++
		return r.dropStale(e, "jar index")
	case jarmeta.IsSignatureFile(e.name):
		r.result.SignaturesDropped++
		return r.dropStale(e, "signature file")
	}

	kind, dest := r.classify(e)
	if err := r.ensureDirectory(path.Dir(dest)); err != nil {
		return withEntry(err, e.name)
	}

	switch kind {
	case types.EntryClass:
		return r.rewriteClass(e, dest)
	case types.EntryManifest:
		return r.rewriteManifest(e, dest)
	}

	if r.visited.has(dest) {
		r.result.DuplicatesSkipped++
		r.logger.Debug().
			Str("entry", e.name).
			Str("destination", dest).
			Msg("Destination already written, skipping duplicate")
		return nil
	}
	return r.copyResource(e, dest)
}

// classify returns the kind of an entry and its root-relative destination
func (r *Relocator) classify(e entry) (types.EntryKind, string) {
	switch {
	case jarmeta.IsClass(e.name):
		return types.EntryClass, classDestination(e.name, r.remapper)
	case jarmeta.IsManifest(e.name):
		return types.EntryManifest, e.name
	default:
		return types.EntryResource, r.remapper.Map(e.name)
	}
}

// classDestination maps a class by its name without the extension, which
// is what the remapper matches class names against.
func classDestination(name string, remapper types.Remapper) string {
	return remapper.Map(name[:len(name)-len(jarmeta.ClassSuffix)]) + jarmeta.ClassSuffix
}

// withEntry attaches the entry name to a coded error
func withEntry(err error, name string) error {
	if relocErr, ok := err.(*errors.RelocError); ok {
		return relocErr.WithDetail("entry", name)
	}
	return err
}
