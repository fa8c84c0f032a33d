package types

import "time"

// EntryKind classifies a file found under the relocation root
type EntryKind string

const (
	// EntryClass is compiled code, rewritten through a SymbolRewriter
	EntryClass EntryKind = "class"
	// EntryManifest is the jar manifest, rewritten without digest attributes
	EntryManifest EntryKind = "manifest"
	// EntryResource is any other file, copied verbatim
	EntryResource EntryKind = "resource"
)

// WrittenEntry records one destination produced by a relocation run.
type WrittenEntry struct {
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Kind        EntryKind `json:"kind"`
}

// RelocationResult summarizes a relocation run.
type RelocationResult struct {
	Root     string         `json:"root"`
	DryRun   bool           `json:"dryRun"`
	Written  []WrittenEntry `json:"written"`
	Duration time.Duration  `json:"duration"`

	Classes           int `json:"classes"`
	Manifests         int `json:"manifests"`
	Resources         int `json:"resources"`
	SignaturesDropped int `json:"signaturesDropped"`
	IndexDropped      int `json:"indexDropped"`
	DuplicatesSkipped int `json:"duplicatesSkipped"`
	SourcesPruned     int `json:"sourcesPruned"`
}

// Total returns the number of entries written (or that would be written in a dry run)
func (r *RelocationResult) Total() int {
	return r.Classes + r.Manifests + r.Resources
}

// Skipped returns the number of entries intentionally not written
func (r *RelocationResult) Skipped() int {
	return r.SignaturesDropped + r.IndexDropped + r.DuplicatesSkipped
}

// Record adds a written entry and bumps the matching counter.
func (r *RelocationResult) Record(source, destination string, kind EntryKind) {
	r.Written = append(r.Written, WrittenEntry{Source: source, Destination: destination, Kind: kind})
	switch kind {
	case EntryClass:
		r.Classes++
	case EntryManifest:
		r.Manifests++
	case EntryResource:
		r.Resources++
	}
}
