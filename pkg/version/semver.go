package version

import (
	"sync"

	"github.com/Masterminds/semver/v3"
)

var (
	parseOnce sync.Once
	parsed    *semver.Version
)

// resetParsedVersion lets tests change Version after it was parsed.
func resetParsedVersion() {
	parseOnce = sync.Once{}
	parsed = nil
}

// Parsed returns Version as a semantic version, or nil for builds such as
// "dev" that carry none.
func Parsed() *semver.Version {
	parseOnce.Do(func() {
		if v, err := semver.NewVersion(Version); err == nil {
			parsed = v
		}
	})
	return parsed
}

// IsDevBuild reports whether the binary was built without a release version.
func IsDevBuild() bool {
	return Parsed() == nil
}

// IsPrerelease reports whether the release version has a pre-release part.
func IsPrerelease() bool {
	v := Parsed()
	return v != nil && v.Prerelease() != ""
}

// Compare orders the running version against other: -1 older, 0 same,
// 1 newer. ok is false when either side is not a semantic version.
func Compare(other string) (cmp int, ok bool) {
	current := Parsed()
	if current == nil {
		return 0, false
	}
	o, err := semver.NewVersion(other)
	if err != nil {
		return 0, false
	}
	return current.Compare(o), true
}

// IsOlderThan reports whether this binary is an older release than other,
// e.g. a database last opened by a newer gametracker. Dev builds and
// unparseable versions are never older.
func IsOlderThan(other string) bool {
	cmp, ok := Compare(other)
	return ok && cmp < 0
}
