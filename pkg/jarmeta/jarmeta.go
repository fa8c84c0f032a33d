// Package jarmeta holds the reserved names and patterns of the jar format
// that relocation has to special-case.
//
// See https://docs.oracle.com/en/java/javase/11/docs/specs/jar/jar.html
package jarmeta

import (
	"regexp"
	"strings"
)

const (
	// MetaInfDir is the jar metadata directory
	MetaInfDir = "META-INF"

	// ManifestName is the path of the jar manifest
	ManifestName = "META-INF/MANIFEST.MF"

	// IndexListName is the aggregate class index. It lists packages by their
	// pre-relocation names, so it is dropped rather than carried over.
	IndexListName = "META-INF/INDEX.LIST"

	// ClassSuffix is the extension of compiled classes
	ClassSuffix = ".class"

	// VersionsPrefix prefixes multi-release entries: META-INF/versions/<n>/...
	VersionsPrefix = "META-INF/versions/"
)

var (
	// SignatureFilePattern matches signature files, which any content change
	// invalidates:
	//
	//	META-INF/*.SF
	//	META-INF/*.DSA
	//	META-INF/*.RSA
	//	META-INF/SIG-*
	SignatureFilePattern = regexp.MustCompile(`^META-INF/(?:[^/]+\.(?:DSA|RSA|SF)|SIG-[^/]+)$`)

	// DigestAttributePattern matches per-entry manifest attributes holding a
	// digest of the entry's pre-relocation content.
	DigestAttributePattern = regexp.MustCompile(`^.*-Digest$`)
)

// IsSignatureFile reports whether name is a signature file
func IsSignatureFile(name string) bool {
	return SignatureFilePattern.MatchString(name)
}

// IsDigestAttribute reports whether a manifest attribute key holds a digest
func IsDigestAttribute(key string) bool {
	return DigestAttributePattern.MatchString(key)
}

// IsIndexList reports whether name is the aggregate jar index
func IsIndexList(name string) bool {
	return name == IndexListName
}

// IsManifest reports whether name is the jar manifest
func IsManifest(name string) bool {
	return name == ManifestName
}

// IsClass reports whether name is a compiled class
func IsClass(name string) bool {
	return strings.HasSuffix(name, ClassSuffix)
}

// SplitVersioned splits a multi-release name into its version prefix
// ("META-INF/versions/9/") and the remainder. Names outside the versions
// tree return an empty prefix and the name unchanged.
func SplitVersioned(name string) (prefix, rest string) {
	if !strings.HasPrefix(name, VersionsPrefix) {
		return "", name
	}
	tail := name[len(VersionsPrefix):]
	slash := strings.IndexByte(tail, '/')
	if slash <= 0 {
		return "", name
	}
	for _, c := range tail[:slash] {
		if c < '0' || c > '9' {
			return "", name
		}
	}
	cut := len(VersionsPrefix) + slash + 1
	return name[:cut], name[cut:]
}
