// Package cli defines the Cobra command tree for the takpkg CLI. Each file
// in this package registers one top-level command (package, info, archive,
// etc.) with the root command. Commands resolve settings and the recipe,
// then delegate to the platform, layout, and recipe packages.
package cli
