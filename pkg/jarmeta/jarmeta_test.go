package jarmeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSignatureFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"META-INF/Foo.SF", true},
		{"META-INF/FOO.DSA", true},
		{"META-INF/CERT.RSA", true},
		{"META-INF/SIG-FOO", true},
		{"META-INF/MANIFEST.MF", false},
		{"META-INF/foo.sf", false},
		{"META-INF/sub/Foo.SF", false},
		{"META-INF/.SF", false},
		{"com/old/Foo.SF", false},
		{"META-INF/Foo.SF.bak", false},
		{"META-INF/SIG-", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSignatureFile(tt.name))
		})
	}
}

func TestIsDigestAttribute(t *testing.T) {
	assert.True(t, IsDigestAttribute("SHA-256-Digest"))
	assert.True(t, IsDigestAttribute("SHA1-Digest"))
	assert.True(t, IsDigestAttribute("-Digest"))
	assert.False(t, IsDigestAttribute("SHA-256-digest"), "match is case-sensitive")
	assert.False(t, IsDigestAttribute("Digest-Algorithms"))
	assert.False(t, IsDigestAttribute("Main-Class"))
}

func TestReservedNames(t *testing.T) {
	assert.True(t, IsIndexList("META-INF/INDEX.LIST"))
	assert.False(t, IsIndexList("INDEX.LIST"))
	assert.True(t, IsManifest("META-INF/MANIFEST.MF"))
	assert.False(t, IsManifest("sub/META-INF/MANIFEST.MF"))
	assert.True(t, IsClass("com/old/Foo.class"))
	assert.True(t, IsClass("com/old/Foo$Inner.class"))
	assert.False(t, IsClass("com/old/Foo.classic"))
}

func TestSplitVersioned(t *testing.T) {
	tests := []struct {
		name       string
		wantPrefix string
		wantRest   string
	}{
		{"META-INF/versions/9/com/old/Foo.class", "META-INF/versions/9/", "com/old/Foo.class"},
		{"META-INF/versions/11/module-info.class", "META-INF/versions/11/", "module-info.class"},
		{"META-INF/versions/x/com/Foo.class", "", "META-INF/versions/x/com/Foo.class"},
		{"META-INF/versions/", "", "META-INF/versions/"},
		{"com/old/Foo.class", "", "com/old/Foo.class"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, rest := SplitVersioned(tt.name)
			assert.Equal(t, tt.wantPrefix, prefix)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}
