package config

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// NormalizeVersion returns a clean release version, or empty if the version
// is not a valid release (e.g., dev builds, pseudo-versions from go install).
// Explicit prerelease tags (v0.2.0-rc1) are allowed.
//
// Examples:
//
//	"v0.1.0"                          -> "v0.1.0"
//	"0.1.0"                           -> "v0.1.0"
//	"hookslab-v0.1.0"                 -> "v0.1.0"
//	"v0.2.0-rc1"                      -> "v0.2.0-rc1" (prerelease allowed)
//	"0.1.0-dev"                       -> "" (dev build)
//	"v0.2.1-0.20260122153045-abc123"  -> "" (pseudo-version)
func NormalizeVersion(version string) string {
	version = strings.TrimPrefix(strings.TrimSpace(version), "hookslab-")
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}

	// Reject -dev builds
	if semver.Prerelease(version) == "-dev" {
		return ""
	}

	// Reject Go pseudo-versions (v0.2.1-0.20260122153045-abc123)
	if strings.HasPrefix(semver.Prerelease(version), "-0.") {
		return ""
	}

	// Must be a full vX.Y.Z
	if !semver.IsValid(version) || semver.Canonical(version) != version {
		return ""
	}
	return version
}

// CheckMinVersion fails when current is a release older than minVersion.
// An empty minVersion always passes, and so does a development build, which cannot be
// ordered against releases.
func CheckMinVersion(minVersion, current string) error {
	minVersion = strings.TrimSpace(minVersion)
	if minVersion == "" {
		return nil
	}
	want := NormalizeVersion(minVersion)
	if want == "" {
		return fmt.Errorf("min_version %q is not a release version", minVersion)
	}
	have := NormalizeVersion(current)
	if have == "" {
		return nil
	}
	if semver.Compare(have, want) < 0 {
		return fmt.Errorf("hookslab %s is older than min_version %s", have, want)
	}
	return nil
}
