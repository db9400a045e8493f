// Package version carries the build-time version stamp.
package version

// version is overridden at build time via
// -ldflags "-X github.com/rockplan/rockplan/internal/version.version=v1.2.3".
var version = "local"

// Get returns the version stamp for this binary.
func Get() string {
	return version
}
