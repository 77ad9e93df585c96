// Package version provides application version information.
// The version can be set at build time using ldflags:
//
//	go build -ldflags "-X github.com/ramonehamilton/ygo-catalog/internal/version.Version=v1.2.3 -X github.com/ramonehamilton/ygo-catalog/internal/version.Commit=abc123"
package version

import (
	"fmt"
	"runtime"
)

// Version is the application version. It defaults to "dev" and can be
// overridden at build time using ldflags.
var Version = "dev"

// Commit is the source revision, set at build time.
var Commit = ""

// GetVersion returns the current application version.
func GetVersion() string {
	return Version
}

// String returns a one-line description of the build.
func String() string {
	s := fmt.Sprintf("ygo-catalog %s (%s/%s, %s)", Version, runtime.GOOS, runtime.GOARCH, runtime.Version())
	if Commit != "" {
		s += " commit " + Commit
	}
	return s
}
