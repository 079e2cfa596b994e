// Package version reports build metadata injected through ldflags.
package version

import (
	"fmt"
	"runtime"
)

// These variables are set via ldflags during build.
var (
	Version   = "dev"
	Commit    = "none"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

// Platform returns GOOS/GOARCH of the running binary.
func Platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

// Summary is the short form: the version plus a 7-character commit when known.
func Summary() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	if Commit != "" && Commit != "none" {
		short := Commit
		if len(short) > 7 {
			short = short[:7]
		}
		return fmt.Sprintf("%s (%s)", v, short)
	}
	return v
}

// Details returns the lines printed by `yoi_chat version`.
func Details() []string {
	return []string{
		fmt.Sprintf("yoi_chat version %s", Summary()),
		fmt.Sprintf("  commit: %s", Commit),
		fmt.Sprintf("  built: %s", Date),
		fmt.Sprintf("  go: %s", GoVersion),
		fmt.Sprintf("  platform: %s", Platform()),
	}
}
