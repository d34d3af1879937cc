// Package layout assembles a package from a pre-built artifact tree. It
// applies an ordered table of copy rules (pattern, destination, source) for
// one platform identifier, copying every matching file from
// <build-root>/<id>/<src> to <package-root>/<id>/<dst>, and publishes the
// include and library directories downstream builds link against. It can
// also record what was copied in a manifest and bundle the layout into a
// .tar.xz archive.
package layout
