package version

import "fmt"

// Version is set at build time via -ldflags.
var Version = "dev"

// Full returns the human-readable version string.
func Full() string {
	return fmt.Sprintf("studypipe %s", Version)
}
