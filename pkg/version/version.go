// Package version reports build information set through -ldflags.
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Set with -ldflags "-X github.com/rshade/pagedtable/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Link-time injected build metadata.
var (
	version   = "0.0.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the build version.
func GetVersion() string { return version }

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string { return gitCommit }

// GetBuildDate returns the build timestamp.
func GetBuildDate() string { return buildDate }

// Semver parses the build version. A leading "v" is accepted.
func Semver() (*semver.Version, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("parsing build version %q: %w", version, err)
	}
	return v, nil
}

// IsRelease reports whether the build version is a release, not a prerelease.
func IsRelease() bool {
	v, err := Semver()
	return err == nil && v.Prerelease() == ""
}
