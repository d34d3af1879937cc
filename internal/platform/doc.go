// Package platform resolves a target operating system and architecture to
// the canonical identifier used as a path segment in both the build output
// tree and the package layout (for example "android-arm64-v8a"). Resolution
// is a pure function; nothing is cached between calls.
package platform
