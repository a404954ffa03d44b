// Package bininfo holds build metadata injected at link time via -ldflags.
// The variable names are part of the build scripts; do not rename them.
package bininfo

var (
	// Version is the SemVer version of the binary, with the git commit
	// appended after a plus sign when available.
	Version = "v0.0.0"

	// BuildTime is when the binary was built.
	BuildTime = "1970-01-01T00:00:00Z"
)
