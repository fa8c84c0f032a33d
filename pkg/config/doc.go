// Package config handles configuration management for jarreloc.
// It layers the embedded defaults, the user config file found through
// XDG, an explicit config file, JARRELOC_ environment variables and
// command-line overrides, in that order.
package config
