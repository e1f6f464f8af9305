// Package version exposes build identity set via ldflags and a few
// semver-derived predicates used by telemetry.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Set at build time:
//
//	-ldflags "-X github.com/asteroid-belt/leetvault/pkg/version.Version=v1.2.3 ..."
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Short returns the bare version string.
func Short() string {
	return Version
}

// Info returns a one-line build description, suitable for log headers.
func Info() string {
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("leetvault %s (%s) built on %s with %s", Version, commit, BuildDate, runtime.Version())
}

var (
	parsed     *semver.Version
	parseTried bool
)

// resetParsed clears the cache so tests can swap Version between cases.
func resetParsed() {
	parsed = nil
	parseTried = false
}

// Parsed returns Version as a semantic version, or nil when it does not
// parse (local builds ship Version="dev"). Parsed lazily, cached forever.
func Parsed() *semver.Version {
	if parsed != nil || parseTried {
		return parsed
	}
	parseTried = true

	v, err := semver.NewVersion(Version)
	if err != nil {
		return nil
	}
	parsed = v
	return parsed
}

// IsPrerelease reports whether this build carries a prerelease tag such as
// v1.0.0-beta.1. Unparseable versions are not prereleases.
func IsPrerelease() bool {
	v := Parsed()
	return v != nil && v.Prerelease() != ""
}

// IsDevBuild reports whether this binary was built without release ldflags.
func IsDevBuild() bool {
	return Parsed() == nil
}
