// Package classfile rewrites the symbolic references held in a compiled
// JVM class so they follow relocated names.
//
// Only the constant pool is touched. Every other structure in a class file
// refers to the pool by index, so entries can change length without
// disturbing the rest of the file, which is copied through verbatim.
package classfile

import (
	"encoding/binary"

	"github.com/arthur-debert/jarreloc/pkg/errors"
)

// Magic is the first word of every class file
const Magic = 0xCAFEBABE

// Constant pool tags
const (
	TagUtf8               = 1
	TagInteger            = 3
	TagFloat              = 4
	TagLong               = 5
	TagDouble             = 6
	TagClass              = 7
	TagString             = 8
	TagFieldref           = 9
	TagMethodref          = 10
	TagInterfaceMethodref = 11
	TagNameAndType        = 12
	TagMethodHandle       = 15
	TagMethodType         = 16
	TagDynamic            = 17
	TagInvokeDynamic      = 18
	TagModule             = 19
	TagPackage            = 20
)

const headerSize = 10 // magic, minor, major, constant_pool_count

// Constant is one constant pool slot. Raw holds the entry bytes including
// the tag. The second slot of a long or double has Tag 0.
type Constant struct {
	Tag  byte
	Raw  []byte
	Text string
	Ref1 uint16
	Ref2 uint16
}

// ClassFile is a class with its constant pool decoded.
type ClassFile struct {
	Minor uint16
	Major uint16
	// Pool is indexed from 1; Pool[0] is unused.
	Pool []Constant
	// Rest is everything after the constant pool
	Rest []byte
}

// Parse decodes the header and constant pool of a class file
func Parse(data []byte) (*ClassFile, error) {
	if len(data) < headerSize {
		return nil, malformed("class file truncated: %d bytes", len(data))
	}
	if binary.BigEndian.Uint32(data) != Magic {
		return nil, malformed("bad magic %#08x", binary.BigEndian.Uint32(data))
	}

	cf := &ClassFile{
		Minor: binary.BigEndian.Uint16(data[4:]),
		Major: binary.BigEndian.Uint16(data[6:]),
	}
	count := int(binary.BigEndian.Uint16(data[8:]))
	if count == 0 {
		return nil, malformed("constant pool count is zero")
	}
	cf.Pool = make([]Constant, count)

	pos := headerSize
	for i := 1; i < count; i++ {
		if pos >= len(data) {
			return nil, malformed("constant pool truncated at entry %d", i)
		}
		tag := data[pos]
		size, err := entrySize(data, pos, tag)
		if err != nil {
			return nil, err
		}
		if pos+size > len(data) {
			return nil, malformed("constant pool entry %d truncated", i)
		}
		c := Constant{Tag: tag, Raw: data[pos : pos+size]}
		switch tag {
		case TagUtf8:
			c.Text = string(data[pos+3 : pos+size])
		case TagClass, TagString, TagMethodType, TagModule, TagPackage:
			c.Ref1 = binary.BigEndian.Uint16(data[pos+1:])
		case TagFieldref, TagMethodref, TagInterfaceMethodref, TagNameAndType, TagDynamic, TagInvokeDynamic:
			c.Ref1 = binary.BigEndian.Uint16(data[pos+1:])
			c.Ref2 = binary.BigEndian.Uint16(data[pos+3:])
		case TagMethodHandle:
			c.Ref1 = binary.BigEndian.Uint16(data[pos+2:])
		}
		cf.Pool[i] = c
		pos += size

		if tag == TagLong || tag == TagDouble {
			i++
		}
	}
	cf.Rest = data[pos:]

	if err := cf.checkRefs(); err != nil {
		return nil, err
	}
	return cf, nil
}

func entrySize(data []byte, pos int, tag byte) (int, error) {
	switch tag {
	case TagUtf8:
		if pos+3 > len(data) {
			return 0, malformed("utf8 entry truncated at offset %d", pos)
		}
		return 3 + int(binary.BigEndian.Uint16(data[pos+1:])), nil
	case TagClass, TagString, TagMethodType, TagModule, TagPackage:
		return 3, nil
	case TagMethodHandle:
		return 4, nil
	case TagInteger, TagFloat, TagFieldref, TagMethodref, TagInterfaceMethodref,
		TagNameAndType, TagDynamic, TagInvokeDynamic:
		return 5, nil
	case TagLong, TagDouble:
		return 9, nil
	default:
		return 0, malformed("unknown constant pool tag %d at offset %d", tag, pos)
	}
}

// checkRefs verifies that name-bearing entries point at utf8 entries
func (cf *ClassFile) checkRefs() error {
	for i, c := range cf.Pool {
		switch c.Tag {
		case TagClass, TagString, TagMethodType, TagModule, TagPackage:
			if !cf.isUtf8(c.Ref1) {
				return malformed("constant %d refers to %d, which is not utf8", i, c.Ref1)
			}
		case TagNameAndType:
			if !cf.isUtf8(c.Ref1) || !cf.isUtf8(c.Ref2) {
				return malformed("name and type %d has a non-utf8 reference", i)
			}
		}
	}
	return nil
}

func (cf *ClassFile) isUtf8(idx uint16) bool {
	return int(idx) > 0 && int(idx) < len(cf.Pool) && cf.Pool[idx].Tag == TagUtf8
}

// Utf8 returns the text of the utf8 entry at idx
func (cf *ClassFile) Utf8(idx uint16) string {
	if !cf.isUtf8(idx) {
		return ""
	}
	return cf.Pool[idx].Text
}

// ClassName returns the internal name of the class constant at idx
func (cf *ClassFile) ClassName(idx uint16) string {
	if int(idx) <= 0 || int(idx) >= len(cf.Pool) || cf.Pool[idx].Tag != TagClass {
		return ""
	}
	return cf.Utf8(cf.Pool[idx].Ref1)
}

// ThisClass returns the internal name of the class the file defines
func (cf *ClassFile) ThisClass() string {
	if len(cf.Rest) < 4 {
		return ""
	}
	return cf.ClassName(binary.BigEndian.Uint16(cf.Rest[2:]))
}

// ClassNames returns the names of every class constant, in pool order
func (cf *ClassFile) ClassNames() []string {
	var names []string
	for i := range cf.Pool {
		if cf.Pool[i].Tag == TagClass {
			names = append(names, cf.ClassName(uint16(i)))
		}
	}
	return names
}

// Strings returns the text of every string constant, in pool order
func (cf *ClassFile) Strings() []string {
	var out []string
	for _, c := range cf.Pool {
		if c.Tag == TagString {
			out = append(out, cf.Utf8(c.Ref1))
		}
	}
	return out
}

func malformed(format string, args ...interface{}) error {
	return errors.Newf(errors.ErrMalformedClass, format, args...)
}
