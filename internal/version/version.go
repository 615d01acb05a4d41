// Package version holds the build identity of the thailint binary.
package version

// Release builds stamp these via ldflags:
// go build -ldflags "-X github.com/be-wise-be-kind/thailint/internal/version.Version=1.2.0
//   -X github.com/be-wise-be-kind/thailint/internal/version.Commit=$(git rev-parse HEAD)
//   -X github.com/be-wise-be-kind/thailint/internal/version.BuildDate=$(date -u +%Y-%m-%d)"
var (
	Version   = "1.1.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info renders the version line shown by --version. Commit and build date
// appear only when the build stamped them in.
func Info() string {
	out := Version
	if Commit != "unknown" && len(Commit) >= 7 {
		out += " (" + Commit[:7] + ")"
	}
	if BuildDate != "unknown" {
		out += " built " + BuildDate
	}
	return out
}
