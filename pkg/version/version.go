// Package version carries the build identity of gametracker binaries.
package version

import (
	"fmt"
	"runtime"
)

// Set with -ldflags "-X github.com/asteroid-belt/gametracker/pkg/version.Version=..." at release time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Short returns the version string shown by --version.
func Short() string {
	return Version
}

// Info returns a one-line build summary, e.g.
// "gametracker v1.2.0 (a1b2c3d) built on 2026-01-01 with go1.25.3".
func Info() string {
	return fmt.Sprintf("gametracker %s (%s) built on %s with %s",
		Version, shortCommit(), BuildDate, runtime.Version())
}

// UserAgent is sent with every outbound HTTP request.
func UserAgent() string {
	return "gametracker/" + Version
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
