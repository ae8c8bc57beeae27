package version

// Build metadata, injected via -ldflags at release time.
var (
	// Version is the semantic version of this build.
	Version = "0.1.0-dev"
	// GitCommit is the commit hash the binary was built from.
	GitCommit = ""
	// BuildDate is the UTC timestamp of the build.
	BuildDate = ""
)
