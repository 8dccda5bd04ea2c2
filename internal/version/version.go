// Package version carries build identification injected via ldflags.
package version

var (
	// Version is the semantic version or git describe output.
	Version = "dev"
	// Commit is the short git commit hash.
	Commit = "unknown"
)
