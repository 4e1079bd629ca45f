package config

import "fmt"

// The following vars are automatically injected via -ldflags.
var (
	Commit    = "unknown"
	BuildDate = "1970-01-01T00:00:00+00:00"
)

// GetFormattedBuildArgs returns "<module> @ <commit> (<build date>)".
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}
