// Package version holds build metadata injected via -ldflags.
package version

var (
	// Version is the semantic version of this build.
	Version = "0.9.0-dev"
	// Commit is the git revision the binary was built from.
	Commit = ""
	// BuildDate is the build timestamp.
	BuildDate = ""
)
