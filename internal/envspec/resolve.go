package envspec

import (
	"regexp"
	"slices"
	"strings"

	"envgen/internal/constants"
	"envgen/internal/errs"
)

var environmentAliases = map[string]string{
	"test": constants.EnvTesting,
	"stag": constants.EnvStaging,
	"prod": constants.EnvProduction,
}

var validEnvironment = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// NormalizeEnvironment lower-cases name and expands the short aliases
// test, stag and prod. An empty name means local.
func NormalizeEnvironment(name string) (string, error) {
	env := strings.ToLower(strings.TrimSpace(name))
	if env == "" {
		return constants.EnvLocal, nil
	}
	if full, ok := environmentAliases[env]; ok {
		return full, nil
	}
	if !validEnvironment.MatchString(env) {
		return "", errs.Newf(errs.InvalidArgument, "invalid environment name '%s'", name)
	}
	return env, nil
}

// IsKnownEnvironment reports whether env is one of the conventional environments.
func IsKnownEnvironment(env string) bool {
	return slices.Contains(constants.KnownEnvironments, env)
}

// Resolve returns the scalar for env. A per-environment value without an
// entry for env falls back to its first entry; an empty one resolves to null.
func Resolve(v Value, env string) Scalar {
	if !v.IsPerEnvironment() {
		return v.Scalar
	}
	for _, entry := range v.Envs {
		if entry.Name == env {
			return entry.Value
		}
	}
	if len(v.Envs) > 0 {
		return v.Envs[0].Value
	}
	return NullValue()
}
