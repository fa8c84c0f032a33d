package classfile_test

import (
	"bytes"
	"encoding/binary"

	"github.com/arthur-debert/jarreloc/pkg/classfile"
)

// classBuilder assembles minimal class files for tests. The pool is built
// incrementally; build appends an empty class body.
type classBuilder struct {
	pool bytes.Buffer
	next uint16
}

func newClassBuilder() *classBuilder {
	return &classBuilder{next: 1}
}

func (b *classBuilder) add(entry []byte, slots uint16) uint16 {
	idx := b.next
	b.pool.Write(entry)
	b.next += slots
	return idx
}

func (b *classBuilder) utf8(s string) uint16 {
	entry := []byte{classfile.TagUtf8, 0, 0}
	binary.BigEndian.PutUint16(entry[1:], uint16(len(s)))
	return b.add(append(entry, s...), 1)
}

func (b *classBuilder) ref(tag byte, idx uint16) uint16 {
	entry := []byte{tag, 0, 0}
	binary.BigEndian.PutUint16(entry[1:], idx)
	return b.add(entry, 1)
}

func (b *classBuilder) ref2(tag byte, a, c uint16) uint16 {
	entry := []byte{tag, 0, 0, 0, 0}
	binary.BigEndian.PutUint16(entry[1:], a)
	binary.BigEndian.PutUint16(entry[3:], c)
	return b.add(entry, 1)
}

func (b *classBuilder) class(name string) uint16 {
	return b.ref(classfile.TagClass, b.utf8(name))
}

func (b *classBuilder) str(s string) uint16 {
	return b.ref(classfile.TagString, b.utf8(s))
}

func (b *classBuilder) long(v uint64) uint16 {
	entry := make([]byte, 9)
	entry[0] = classfile.TagLong
	binary.BigEndian.PutUint64(entry[1:], v)
	return b.add(entry, 2)
}

// build returns the class file with this and super set and no interfaces,
// fields, methods or attributes.
func (b *classBuilder) build(this, super uint16) []byte {
	var out bytes.Buffer
	_ = binary.Write(&out, binary.BigEndian, uint32(classfile.Magic))
	_ = binary.Write(&out, binary.BigEndian, uint16(0))  // minor
	_ = binary.Write(&out, binary.BigEndian, uint16(61)) // major
	_ = binary.Write(&out, binary.BigEndian, b.next)
	out.Write(b.pool.Bytes())
	_ = binary.Write(&out, binary.BigEndian, uint16(0x0021)) // public super
	_ = binary.Write(&out, binary.BigEndian, this)
	_ = binary.Write(&out, binary.BigEndian, super)
	for i := 0; i < 4; i++ {
		_ = binary.Write(&out, binary.BigEndian, uint16(0))
	}
	return out.Bytes()
}
