// Package manifest reads and writes jar manifests (META-INF/MANIFEST.MF).
//
// A manifest is a main section followed by zero or more named sections,
// each a block of "Name: value" headers terminated by a blank line. Long
// headers are folded onto continuation lines that begin with a single space.
package manifest

import (
	"bytes"
	"io"
	"strings"

	"github.com/arthur-debert/jarreloc/pkg/jarmeta"
)

const (
	// ManifestVersion is the main attribute written first
	ManifestVersion = "Manifest-Version"
	// SignatureVersion replaces Manifest-Version in signature files
	SignatureVersion = "Signature-Version"
	// SectionName is the header that opens every named section
	SectionName = "Name"
)

// Section is a named block of per-entry attributes.
type Section struct {
	Name       string
	Attributes *Attributes
}

// Manifest is a parsed jar manifest.
type Manifest struct {
	Main     *Attributes
	sections []*Section
}

// New returns an empty manifest
func New() *Manifest {
	return &Manifest{Main: NewAttributes()}
}

// Sections returns the named sections in the order they were first seen
func (m *Manifest) Sections() []*Section {
	out := make([]*Section, len(m.sections))
	copy(out, m.sections)
	return out
}

// Section returns the section called name, or nil
func (m *Manifest) Section(name string) *Section {
	for _, s := range m.sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// AddSection returns the section called name, creating it when missing.
// Repeated sections with the same name share one attribute set.
func (m *Manifest) AddSection(name string) *Section {
	if s := m.Section(name); s != nil {
		return s
	}
	s := &Section{Name: name, Attributes: NewAttributes()}
	m.sections = append(m.sections, s)
	return s
}

// FilterSections copies the manifest, keeping main attributes unchanged and
// keeping only the section attributes keep accepts. Sections left without
// attributes are kept.
func (m *Manifest) FilterSections(keep func(name string) bool) *Manifest {
	out := New()
	out.Main = m.Main.Clone()
	for _, s := range m.sections {
		out.sections = append(out.sections, &Section{
			Name:       s.Name,
			Attributes: s.Attributes.Filter(keep),
		})
	}
	return out
}

// WithoutDigests copies the manifest minus every per-entry digest
// attribute, which certify content that relocation changes.
func (m *Manifest) WithoutDigests() *Manifest {
	return m.FilterSections(func(name string) bool {
		return !jarmeta.IsDigestAttribute(name)
	})
}

// WriteTo writes the manifest in its canonical form: CRLF line endings,
// headers folded at 72 bytes, the version attribute first in the main
// section and a blank line after every section.
func (m *Manifest) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	version := ManifestVersion
	if _, ok := m.Main.Get(version); !ok {
		if _, ok := m.Main.Get(SignatureVersion); ok {
			version = SignatureVersion
		}
	}
	if v, ok := m.Main.Get(version); ok {
		writeHeader(&buf, version, v)
	}
	for _, attr := range m.Main.All() {
		if strings.EqualFold(attr.Name, version) {
			continue
		}
		writeHeader(&buf, attr.Name, attr.Value)
	}
	buf.WriteString(lineEnd)

	for _, s := range m.sections {
		writeHeader(&buf, SectionName, s.Name)
		for _, attr := range s.Attributes.All() {
			writeHeader(&buf, attr.Name, attr.Value)
		}
		buf.WriteString(lineEnd)
	}

	return buf.WriteTo(w)
}

// Bytes returns the written form of the manifest
func (m *Manifest) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = m.WriteTo(&buf)
	return buf.Bytes()
}
