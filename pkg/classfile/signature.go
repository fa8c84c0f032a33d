package classfile

import (
	"strings"

	"github.com/arthur-debert/jarreloc/pkg/types"
)

// sigMapper rewrites the class names inside descriptors and generic
// signatures (JVMS 4.3 and 4.7.9.1). It fails on anything that is not a
// well-formed descriptor or signature.
type sigMapper struct {
	s        string
	pos      int
	out      strings.Builder
	remapper types.Remapper
	classes  int
}

// mapSignature rewrites s if it is a field descriptor, method descriptor,
// or a field, method or class signature. ok is false when s is none of
// those or holds no class types.
func mapSignature(s string, remapper types.Remapper) (string, bool) {
	if s == "" {
		return "", false
	}
	for _, parse := range []func(*sigMapper) bool{
		(*sigMapper).fieldSignature,
		(*sigMapper).methodSignature,
		(*sigMapper).classSignature,
	} {
		m := &sigMapper{s: s, remapper: remapper}
		if parse(m) && m.pos == len(s) && m.classes > 0 {
			return m.out.String(), true
		}
	}
	return "", false
}

// mapInternalName maps a class constant's name, which is either an
// internal name or, for array classes, a descriptor.
func mapInternalName(name string, remapper types.Remapper) string {
	if strings.HasPrefix(name, "[") {
		if mapped, ok := mapSignature(name, remapper); ok {
			return mapped
		}
		return name
	}
	return remapper.Map(name)
}

func (m *sigMapper) peek() byte {
	if m.pos < len(m.s) {
		return m.s[m.pos]
	}
	return 0
}

func (m *sigMapper) accept(c byte) bool {
	if m.peek() == c && m.pos < len(m.s) {
		m.out.WriteByte(c)
		m.pos++
		return true
	}
	return false
}

func isBaseType(c byte) bool {
	return strings.IndexByte("BCDFIJSZ", c) >= 0
}

func isIdentChar(c byte) bool {
	return c != 0 && strings.IndexByte(".;[/<>:", c) < 0
}

func (m *sigMapper) identifier() (string, bool) {
	start := m.pos
	for m.pos < len(m.s) && isIdentChar(m.s[m.pos]) {
		m.pos++
	}
	return m.s[start:m.pos], m.pos > start
}

// fieldSignature parses a single type, which covers field descriptors too
func (m *sigMapper) fieldSignature() bool {
	return m.referenceType()
}

func (m *sigMapper) javaType() bool {
	if isBaseType(m.peek()) {
		return m.accept(m.peek())
	}
	return m.referenceType()
}

func (m *sigMapper) referenceType() bool {
	switch m.peek() {
	case 'L':
		return m.classType()
	case 'T':
		return m.typeVariable()
	case '[':
		m.accept('[')
		return m.javaType()
	}
	return false
}

func (m *sigMapper) typeVariable() bool {
	m.accept('T')
	name, ok := m.identifier()
	if !ok {
		return false
	}
	m.out.WriteString(name)
	return m.accept(';')
}

func (m *sigMapper) classType() bool {
	m.accept('L')
	start := m.pos
	for m.pos < len(m.s) && (isIdentChar(m.s[m.pos]) || m.s[m.pos] == '/') {
		m.pos++
	}
	name := m.s[start:m.pos]
	if name == "" || strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") || strings.Contains(name, "//") {
		return false
	}
	m.out.WriteString(m.remapper.Map(name))
	m.classes++

	if m.peek() == '<' && !m.typeArguments() {
		return false
	}
	for m.peek() == '.' {
		m.accept('.')
		inner, ok := m.identifier()
		if !ok {
			return false
		}
		m.out.WriteString(inner)
		if m.peek() == '<' && !m.typeArguments() {
			return false
		}
	}
	return m.accept(';')
}

func (m *sigMapper) typeArguments() bool {
	m.accept('<')
	n := 0
	for m.peek() != '>' {
		switch m.peek() {
		case '*':
			m.accept('*')
		case '+', '-':
			m.accept(m.peek())
			if !m.referenceType() {
				return false
			}
		default:
			if !m.referenceType() {
				return false
			}
		}
		n++
	}
	return n > 0 && m.accept('>')
}

func (m *sigMapper) typeParameters() bool {
	m.accept('<')
	n := 0
	for m.peek() != '>' {
		name, ok := m.identifier()
		if !ok {
			return false
		}
		m.out.WriteString(name)
		// class bound, possibly empty
		if !m.accept(':') {
			return false
		}
		if c := m.peek(); c == 'L' || c == 'T' || c == '[' {
			if !m.referenceType() {
				return false
			}
		}
		for m.peek() == ':' {
			m.accept(':')
			if !m.referenceType() {
				return false
			}
		}
		n++
	}
	return n > 0 && m.accept('>')
}

func (m *sigMapper) methodSignature() bool {
	if m.peek() == '<' && !m.typeParameters() {
		return false
	}
	if !m.accept('(') {
		return false
	}
	for m.peek() != ')' {
		if m.pos >= len(m.s) || !m.javaType() {
			return false
		}
	}
	m.accept(')')
	if !m.accept('V') && !m.javaType() {
		return false
	}
	for m.peek() == '^' {
		m.accept('^')
		switch m.peek() {
		case 'L':
			if !m.classType() {
				return false
			}
		case 'T':
			if !m.typeVariable() {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (m *sigMapper) classSignature() bool {
	if m.peek() == '<' && !m.typeParameters() {
		return false
	}
	if m.peek() != 'L' || !m.classType() {
		return false
	}
	for m.peek() == 'L' {
		if !m.classType() {
			return false
		}
	}
	return true
}
