// Package version holds build metadata injected at link time.
package version

import "fmt"

// Set via -ldflags "-X openfiles/internal/version.Version=..." at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns a human-readable version line.
func Info() string {
	return fmt.Sprintf("openfiles %s (commit %s, built %s)", Version, Commit, Date)
}
