package classfile_test

import (
	"testing"

	"github.com/arthur-debert/jarreloc/pkg/classfile"
	"github.com/arthur-debert/jarreloc/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	b := newClassBuilder()
	this := b.class("com/old/Foo")
	super := b.class("java/lang/Object")
	b.long(42)
	b.str("hello")
	data := b.build(this, super)

	cf, err := classfile.Parse(data)
	require.NoError(t, err)

	assert.Equal(t, uint16(61), cf.Major)
	assert.Equal(t, "com/old/Foo", cf.ThisClass())
	assert.Equal(t, []string{"com/old/Foo", "java/lang/Object"}, cf.ClassNames())
	assert.Equal(t, []string{"hello"}, cf.Strings())
	// 2 utf8 + 2 class + long (2 slots) + utf8 + string + unused slot 0
	assert.Len(t, cf.Pool, 9)
	assert.Equal(t, byte(0), cf.Pool[6].Tag, "second slot of a long")
	assert.Len(t, cf.Rest, 14)
}

func TestParse_Malformed(t *testing.T) {
	b := newClassBuilder()
	this := b.class("com/old/Foo")
	valid := b.build(this, 0)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated_header", valid[:6]},
		{"bad_magic", append([]byte{0xDE, 0xAD, 0xBE, 0xEF}, valid[4:]...)},
		{"truncated_pool", valid[:12]},
		{"zero_pool_count", append(append([]byte{}, valid[:8]...), 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := classfile.Parse(tt.data)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedClass))
		})
	}
}

func TestParse_UnknownTag(t *testing.T) {
	b := newClassBuilder()
	b.add([]byte{99, 0, 0}, 1)
	_, err := classfile.Parse(b.build(0, 0))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedClass))
}

func TestParse_BadReference(t *testing.T) {
	b := newClassBuilder()
	b.ref(classfile.TagClass, 7)
	_, err := classfile.Parse(b.build(1, 0))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedClass))
}
