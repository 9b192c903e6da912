// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/charts/pkg/buildinfo.Version=v0.2.0 \
//	    -X github.com/matzehuels/charts/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/charts/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/charts
package buildinfo

import "fmt"

var (
	// Version is the semantic version.
	// Set via ldflags: -X github.com/matzehuels/charts/pkg/buildinfo.Version=...
	Version = "0.1.0"

	// Commit is the git commit SHA.
	// Set via ldflags: -X github.com/matzehuels/charts/pkg/buildinfo.Commit=...
	Commit = "none"

	// Date is the build timestamp.
	// Set via ldflags: -X github.com/matzehuels/charts/pkg/buildinfo.Date=...
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
