// Package recipe handles parsing and validation of takpkg.yaml, the file
// that names the package, its version, the platforms it is built for, and
// optionally overrides the built-in copy rule table. Files are validated
// against an embedded JSON Schema before use.
package recipe
