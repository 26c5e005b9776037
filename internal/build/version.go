// Package build exposes the release identity stamped in with
//
//	go build -ldflags "-X github.com/pfrederiksen/nps-explorer/internal/build.Version=1.0.0 ..."
package build

// Overridden at link time; the defaults mark a local build.
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// FullVersion renders "<version>+<commit> (built <time>)", the string shown by
// --version.
func FullVersion() string {
	return Version + "+" + Commit + " (built " + BuildTime + ")"
}
