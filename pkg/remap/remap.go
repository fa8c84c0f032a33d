// Package remap implements prefix relocation rules, the name-remapping
// policy used to shade packages into a new namespace.
package remap

import (
	"strings"

	"github.com/arthur-debert/jarreloc/pkg/errors"
	"github.com/arthur-debert/jarreloc/pkg/jarmeta"
	"github.com/arthur-debert/jarreloc/pkg/types"
	"github.com/bmatcuk/doublestar/v4"
)

// Relocation moves every name under Pattern to Replacement. Patterns may be
// written as packages (com.old) or paths (com/old). Includes and Excludes
// are glob patterns over class names (com.old.internal.** or
// com/old/internal/**); when Includes is empty every name under Pattern is
// eligible.
type Relocation struct {
	Pattern     string   `koanf:"pattern" toml:"pattern"`
	Replacement string   `koanf:"replacement" toml:"replacement"`
	Includes    []string `koanf:"includes" toml:"includes,omitempty"`
	Excludes    []string `koanf:"excludes" toml:"excludes,omitempty"`
}

type rule struct {
	path        string
	replacement string
	includes    []string
	excludes    []string
}

// Remapper applies an ordered list of relocations. The first relocation
// that accepts a name wins; overlapping rules are not reconciled.
type Remapper struct {
	rules []rule
}

var _ types.Remapper = (*Remapper)(nil)

// New validates relocations and builds a Remapper from them
func New(relocations ...Relocation) (*Remapper, error) {
	r := &Remapper{}
	for i, rel := range relocations {
		compiled, err := compile(rel)
		if err != nil {
			return nil, err.WithDetail("index", i)
		}
		r.rules = append(r.rules, compiled)
	}
	return r, nil
}

// MustNew is New that panics on invalid relocations
func MustNew(relocations ...Relocation) *Remapper {
	r, err := New(relocations...)
	if err != nil {
		panic(err)
	}
	return r
}

func compile(rel Relocation) (rule, *errors.RelocError) {
	path := toPath(strings.TrimSpace(rel.Pattern))
	replacement := toPath(strings.TrimSpace(rel.Replacement))
	if path == "" {
		return rule{}, errors.New(errors.ErrInvalidRelocation, "relocation pattern is empty")
	}
	if replacement == "" {
		return rule{}, errors.Newf(errors.ErrInvalidRelocation, "relocation of %s has no replacement", rel.Pattern).
			WithDetail("pattern", rel.Pattern)
	}

	compiled := rule{path: path, replacement: replacement}
	for _, glob := range rel.Includes {
		g, err := compileGlob(glob)
		if err != nil {
			return rule{}, err
		}
		compiled.includes = append(compiled.includes, g)
	}
	for _, glob := range rel.Excludes {
		g, err := compileGlob(glob)
		if err != nil {
			return rule{}, err
		}
		compiled.excludes = append(compiled.excludes, g)
	}
	return compiled, nil
}

func compileGlob(glob string) (string, *errors.RelocError) {
	g := strings.TrimSpace(glob)
	if !strings.Contains(g, "/") {
		g = strings.ReplaceAll(g, ".", "/")
	}
	if g == "" || !doublestar.ValidatePattern(g) {
		return "", errors.Newf(errors.ErrInvalidRelocation, "invalid glob %q", glob).
			WithDetail("glob", glob)
	}
	return g, nil
}

// toPath converts a package name to its path form and trims stray slashes
func toPath(name string) string {
	if !strings.Contains(name, "/") {
		name = strings.ReplaceAll(name, ".", "/")
	}
	return strings.Trim(name, "/")
}

// Map relocates a slash-separated name. Multi-release entries keep their
// META-INF/versions/<n>/ prefix and are relocated on the remainder. Names
// no relocation accepts are returned unchanged.
func (r *Remapper) Map(name string) string {
	prefix, rest := jarmeta.SplitVersioned(name)
	for _, rl := range r.rules {
		if mapped, ok := rl.apply(rest); ok {
			return prefix + mapped
		}
	}
	return name
}

// Len returns the number of relocations
func (r *Remapper) Len() int {
	return len(r.rules)
}

func (rl rule) apply(name string) (string, bool) {
	if name != rl.path && !strings.HasPrefix(name, rl.path+"/") {
		return "", false
	}
	if !rl.admits(strings.TrimSuffix(name, jarmeta.ClassSuffix)) {
		return "", false
	}
	return rl.replacement + name[len(rl.path):], true
}

func (rl rule) admits(name string) bool {
	if len(rl.includes) > 0 {
		included := false
		for _, g := range rl.includes {
			if doublestar.MatchUnvalidated(g, name) {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}
	for _, g := range rl.excludes {
		if doublestar.MatchUnvalidated(g, name) {
			return false
		}
	}
	return true
}

// ParseRelocation parses the "pattern=replacement" shorthand used on the
// command line.
func ParseRelocation(spec string) (Relocation, error) {
	pattern, replacement, ok := strings.Cut(spec, "=")
	if !ok || strings.TrimSpace(pattern) == "" || strings.TrimSpace(replacement) == "" {
		return Relocation{}, errors.Newf(errors.ErrInvalidRelocation,
			"invalid relocation %q, expected pattern=replacement", spec).
			WithDetail("relocation", spec)
	}
	return Relocation{
		Pattern:     strings.TrimSpace(pattern),
		Replacement: strings.TrimSpace(replacement),
	}, nil
}
