package version

import "fmt"

// These variables are set at build time via ldflags
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the version string (commit-hash based, no semver)
func String() string {
	return fmt.Sprintf("armazem dev (commit: %s, built: %s)", shortCommit(), BuildTime)
}

// UserAgent returns the value sent in the User-Agent header of backend requests.
func UserAgent() string {
	return "armazem/" + shortCommit()
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
