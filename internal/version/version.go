package version

import (
	"os"
	"path/filepath"
	"strings"
)

// ApplicationName is the human-readable name of the application.
var ApplicationName = "envgen"

// CommandName is the name of the executable command.
// It is initialized dynamically from the executable filename.
var CommandName = "envgen"

// Version is the current version of the application.
// This is intended to be overwritten at build time using:
// -ldflags "-X envgen/internal/version.Version=v1.2.3"
var Version = "v0.0.0-dev"

// Commit is the git commit hash of the build.
var Commit = "none"

// BuildDate is the date the binary was built.
var BuildDate = "unknown"

func init() {
	baseName := filepath.Base(os.Args[0])
	CommandName = strings.TrimSuffix(baseName, filepath.Ext(baseName))

	// go run and go test binaries
	if CommandName == "" || strings.EqualFold(CommandName, "main") || strings.HasSuffix(CommandName, ".test") {
		CommandName = "envgen"
	}
}

// String returns the version line printed by --version.
func String() string {
	return Version + " (commit: " + Commit + ", built: " + BuildDate + ")"
}
