// Package version holds build information, overridden with -ldflags.
package version

var (
	Version = "0.1.0"
	Commit  = "dev"
)

// String returns "Version (Commit)".
func String() string {
	return Version + " (" + Commit + ")"
}
