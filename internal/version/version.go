// Package version carries build metadata stamped in by the linker:
//
//	go build -ldflags "-X git.home.luguber.info/inful/seobuilder/internal/version.Version=v0.4.0"
package version

import "fmt"

// Version is the released version, "dev" for local builds.
var Version = "dev"

// Build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the one-line version banner printed by --version.
func String() string {
	return fmt.Sprintf("seobuilder %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
