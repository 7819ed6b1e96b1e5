// Package version holds build metadata stamped via -ldflags.
package version

var (
	// Version is the release version, e.g. "v0.3.1".
	Version = "dev"
	// GitCommit is the short commit hash of the build.
	GitCommit = "unknown"
	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)
