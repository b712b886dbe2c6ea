package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"envgen/internal/constants"
	"envgen/internal/paths"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment variable that overrides the config file.
const EnvPrefix = "ENVGEN_"

// AppConfig holds the application configuration settings.
type AppConfig struct {
	Files    FileConfig     `toml:"files" envPrefix:"FILES_"`
	Defaults DefaultsConfig `toml:"defaults" envPrefix:"DEFAULTS_"`
	Lock     LockConfig     `toml:"lock" envPrefix:"LOCK_"`
	Log      LogConfig      `toml:"log" envPrefix:"LOG_"`
}

// FileConfig holds the project file names, relative to the project root.
type FileConfig struct {
	Source string `toml:"source" env:"SOURCE"`
	Legacy string `toml:"legacy" env:"LEGACY"`
	Output string `toml:"output" env:"OUTPUT"`
}

// DefaultsConfig holds environment and remembered defaults settings.
type DefaultsConfig struct {
	Environment string `toml:"environment" env:"ENVIRONMENT"`
	LinkMode    string `toml:"link_mode" env:"LINK_MODE"` // auto, symlink or pointer
}

// LockConfig controls the advisory run lock.
type LockConfig struct {
	Enabled        bool `toml:"enabled" env:"ENABLED"`
	TimeoutSeconds int  `toml:"timeout_seconds" env:"TIMEOUT_SECONDS"`
}

// LogConfig holds the default log level.
type LogConfig struct {
	Level string `toml:"level" env:"LEVEL"`
}

// Default returns the built-in configuration.
func Default() AppConfig {
	return AppConfig{
		Files: FileConfig{
			Source: constants.SourceFileName,
			Legacy: constants.LegacyFileName,
			Output: constants.OutputFileName,
		},
		Defaults: DefaultsConfig{
			Environment: constants.EnvLocal,
			LinkMode:    constants.LinkModeAuto,
		},
		Lock: LockConfig{
			Enabled:        true,
			TimeoutSeconds: 10,
		},
		Log: LogConfig{
			Level: "notice",
		},
	}
}

// LoadAppConfig reads the user configuration file and applies ENVGEN_*
// environment overrides from the process environment.
func LoadAppConfig() (AppConfig, error) {
	return Load(paths.GetConfigFilePath(), nil)
}

// Load reads the TOML file at path (a missing file is not an error), then
// applies overrides from environ (nil means the process environment).
// The returned config is always usable: on error it holds the values that
// could be applied, and the error is meant to be reported as a warning.
func Load(path string, environ map[string]string) (AppConfig, error) {
	conf := Default()
	var errs []error

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		fileConf := Default()
		if err := toml.Unmarshal(data, &fileConf); err != nil {
			errs = append(errs, fmt.Errorf("config file '%s': %w", path, err))
		} else {
			conf = fileConf
		}
	case !errors.Is(err, fs.ErrNotExist):
		errs = append(errs, fmt.Errorf("config file '%s': %w", path, err))
	}

	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&conf, opts); err != nil {
		errs = append(errs, fmt.Errorf("environment overrides: %w", err))
	}

	if err := conf.normalize(); err != nil {
		errs = append(errs, err)
	}

	return conf, errors.Join(errs...)
}

func (c *AppConfig) normalize() error {
	def := Default()
	if c.Files.Source == "" {
		c.Files.Source = def.Files.Source
	}
	if c.Files.Legacy == "" {
		c.Files.Legacy = def.Files.Legacy
	}
	if c.Files.Output == "" {
		c.Files.Output = def.Files.Output
	}
	if c.Defaults.Environment == "" {
		c.Defaults.Environment = def.Defaults.Environment
	}
	if c.Lock.TimeoutSeconds < 0 {
		c.Lock.TimeoutSeconds = 0
	}

	mode := strings.ToLower(strings.TrimSpace(c.Defaults.LinkMode))
	switch mode {
	case "":
		c.Defaults.LinkMode = def.Defaults.LinkMode
	case constants.LinkModeAuto, constants.LinkModeSymlink, constants.LinkModePointer:
		c.Defaults.LinkMode = mode
	default:
		c.Defaults.LinkMode = def.Defaults.LinkMode
		return fmt.Errorf("unknown link_mode %q, using %q", mode, def.Defaults.LinkMode)
	}
	return nil
}
