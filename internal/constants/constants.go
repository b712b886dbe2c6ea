package constants

// File Names
const (
	SourceFileName     = ".env.json"
	LegacyFileName     = ".env.example"
	OutputFileName     = ".env"
	AppConfigFileName  = "envgen.toml"
	DefaultsLinkPrefix = ".env."
	DefaultsLinkSuffix = ".defaults"
)

// Environment Names
const (
	EnvLocal      = "local"
	EnvTesting    = "testing"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// KnownEnvironments lists the conventional environments in their canonical order.
var KnownEnvironments = []string{EnvLocal, EnvTesting, EnvStaging, EnvProduction}

// Well-known variable names specialized by the legacy converter.
const (
	AppEnvKey   = "APP_ENV"
	AppDebugKey = "APP_DEBUG"
)

// PinnedHeader marks the start of the hand-edited block at the end of the output file.
const PinnedHeader = "### Local pinned values ###"

// PinnedTemplate is written when no pinned block exists yet.
const PinnedTemplate = "\n" + PinnedHeader + "\n" +
	"#DB_USERNAME=\"root\"\n" +
	"#DB_PASSWORD=\"\"\n"

// OutputBanner opens every generated output file.
const OutputBanner = "###\n" +
	"### This file is generated from " + SourceFileName + ", do not edit it by hand.\n" +
	"### Put local overrides below the pinned values marker at the end of the file,\n" +
	"### they are kept when the file is regenerated.\n" +
	"###\n\n"

// Link modes for remembered defaults files
const (
	LinkModeAuto    = "auto"
	LinkModeSymlink = "symlink"
	LinkModePointer = "pointer"
)
