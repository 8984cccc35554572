package buildinfo

// Set at build time via -ldflags "-X github.com/tithe-dev/tithe/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
