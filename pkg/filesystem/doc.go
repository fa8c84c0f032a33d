// Package filesystem provides filesystem implementations for jarreloc.
//
// This package contains implementations of the types.FS interface (the
// standard OS filesystem and an afero-backed one used by tests), the
// recursive file enumeration the relocator walks, and the write-to-temp
// then rename primitive every destination write goes through.
package filesystem
