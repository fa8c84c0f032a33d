package classfile

import (
	"bytes"
	"encoding/binary"
	"regexp"
	"strings"
	"unicode"

	"github.com/arthur-debert/jarreloc/pkg/logging"
	"github.com/arthur-debert/jarreloc/pkg/types"
	"github.com/rs/zerolog"
)

// role is how the constant pool uses a utf8 entry. When an entry serves
// several roles the highest one decides how it is rewritten.
type role int

const (
	roleNone role = iota
	roleString
	roleDescriptor
	rolePackage
	roleClass
)

var dottedName = regexp.MustCompile(`^[\p{L}_$][\p{L}\p{N}_$]*(?:\.[\p{L}_$][\p{L}\p{N}_$]*)+$`)

// Rewriter implements types.SymbolRewriter for JVM class files.
type Rewriter struct {
	logger zerolog.Logger
}

var _ types.SymbolRewriter = (*Rewriter)(nil)

// New returns a class file rewriter
func New() *Rewriter {
	return &Rewriter{logger: logging.GetLogger("classfile")}
}

// Rewrite returns data with every class, package, descriptor and signature
// reference in its constant pool passed through remapper. String constants
// that spell a class name or resource path, in slash or dotted form, are
// relocated too.
func (r *Rewriter) Rewrite(data []byte, remapper types.Remapper) ([]byte, error) {
	cf, err := Parse(data)
	if err != nil {
		return nil, err
	}
	roles := cf.roles()

	var buf bytes.Buffer
	buf.Grow(len(data) + 64)
	buf.Write(data[:headerSize])

	changed := 0
	for i := 1; i < len(cf.Pool); i++ {
		c := cf.Pool[i]
		if c.Tag == 0 {
			continue
		}
		if c.Tag != TagUtf8 {
			buf.Write(c.Raw)
			continue
		}

		text := rewriteUtf8(c.Text, roles[i], remapper)
		if len(text) > 0xFFFF {
			return nil, malformed("constant %d exceeds 65535 bytes after relocation", i)
		}
		if text != c.Text {
			changed++
		}
		buf.WriteByte(TagUtf8)
		_ = binary.Write(&buf, binary.BigEndian, uint16(len(text)))
		buf.WriteString(text)
	}
	buf.Write(cf.Rest)

	r.logger.Trace().
		Str("class", cf.ThisClass()).
		Int("constants", len(cf.Pool)-1).
		Int("changed", changed).
		Msg("Rewrote constant pool")

	return buf.Bytes(), nil
}

func (cf *ClassFile) roles() []role {
	roles := make([]role, len(cf.Pool))
	mark := func(idx uint16, r role) {
		if r > roles[idx] {
			roles[idx] = r
		}
	}
	for _, c := range cf.Pool {
		switch c.Tag {
		case TagClass:
			mark(c.Ref1, roleClass)
		case TagPackage:
			mark(c.Ref1, rolePackage)
		case TagMethodType:
			mark(c.Ref1, roleDescriptor)
		case TagNameAndType:
			mark(c.Ref2, roleDescriptor)
		case TagString:
			mark(c.Ref1, roleString)
		}
	}
	return roles
}

func rewriteUtf8(text string, r role, remapper types.Remapper) string {
	switch r {
	case roleClass:
		return mapInternalName(text, remapper)
	case rolePackage:
		return remapper.Map(text)
	case roleString:
		return mapStringConstant(text, remapper)
	default:
		// descriptors, plus the field, method and attribute utf8 entries that
		// are only referenced from outside the constant pool
		if mapped, ok := mapSignature(text, remapper); ok {
			return mapped
		}
		return text
	}
}

func mapStringConstant(s string, remapper types.Remapper) string {
	if mapped, ok := mapSignature(s, remapper); ok {
		return mapped
	}

	if isSlashName(s) {
		lead := ""
		body := s
		if strings.HasPrefix(body, "/") {
			lead, body = "/", body[1:]
		}
		if mapped := remapper.Map(body); mapped != body {
			return lead + mapped
		}
		return s
	}

	if dottedName.MatchString(s) {
		slashed := strings.ReplaceAll(s, ".", "/")
		if mapped := remapper.Map(slashed); mapped != slashed {
			return strings.ReplaceAll(mapped, "/", ".")
		}
	}
	return s
}

func isSlashName(s string) bool {
	if !strings.Contains(s, "/") {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) || strings.ContainsRune(`;<>:"\*?|`, r) {
			return false
		}
	}
	return true
}
