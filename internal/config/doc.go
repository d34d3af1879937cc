// Package config manages takpkg settings. Values come, in increasing order
// of precedence, from ~/.takpkg/config.yaml, TAKPKG_* environment variables,
// and command-line flags bound by the cli package. Core packages never read
// these sources directly; they receive a Settings value.
package config
