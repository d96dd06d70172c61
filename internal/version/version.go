// Package version exposes the build version injected at link time.
package version

var version = "dev"

// Value returns the build version string.
func Value() string {
	return version
}
