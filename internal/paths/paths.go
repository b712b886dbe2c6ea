package paths

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"

	"envgen/internal/constants"
	"envgen/internal/version"

	"github.com/adrg/xdg"
)

var (
	// StateHomeOverride allows overriding the state home for tests.
	StateHomeOverride string
	// ConfigHomeOverride allows overriding the config home for tests.
	ConfigHomeOverride string
)

func appDirName() string {
	return strings.ToLower(version.ApplicationName)
}

// GetConfigHome returns the XDG config home, honoring ConfigHomeOverride.
func GetConfigHome() string {
	if ConfigHomeOverride != "" {
		return ConfigHomeOverride
	}
	return xdg.ConfigHome
}

// GetStateHome returns the XDG state home, honoring StateHomeOverride.
func GetStateHome() string {
	if StateHomeOverride != "" {
		return StateHomeOverride
	}
	return xdg.StateHome
}

// GetConfigFilePath returns the absolute path to envgen.toml
// (e.g., ~/.config/envgen/envgen.toml).
func GetConfigFilePath() string {
	return filepath.Join(GetConfigHome(), appDirName(), constants.AppConfigFileName)
}

// GetLockFilePath returns the lock file used for runs against projectRoot.
// Lock files live in the state home so nothing extra is created in the project.
func GetLockFilePath(projectRoot string) string {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		abs = projectRoot
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return filepath.Join(GetStateHome(), appDirName(), "locks", hex.EncodeToString(sum[:8])+".lock")
}

// Project groups the file locations of one project directory.
type Project struct {
	Root   string
	Source string
	Legacy string
	Output string
}

// NewProject resolves the project files under root. Relative names are joined
// to root; absolute names are used as given.
func NewProject(root, source, legacy, output string) Project {
	join := func(name, fallback string) string {
		if name == "" {
			name = fallback
		}
		if filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(root, name)
	}
	return Project{
		Root:   root,
		Source: join(source, constants.SourceFileName),
		Legacy: join(legacy, constants.LegacyFileName),
		Output: join(output, constants.OutputFileName),
	}
}

// DefaultsLinkPath returns the remembered defaults link for an environment,
// e.g. <root>/.env.production.defaults.
func DefaultsLinkPath(root, environment string) string {
	return filepath.Join(root, constants.DefaultsLinkPrefix+environment+constants.DefaultsLinkSuffix)
}
