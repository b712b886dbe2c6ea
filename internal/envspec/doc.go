// Package envspec decodes the .env.json source into an ordered EnvSpec and
// resolves per-environment values.
//
// A source document is a JSON object mapping variable names to either a
// scalar (string, number, bool, null) or an object keyed by environment name
// whose values are scalars:
//
//	{
//	  "APP_NAME": "shop",
//	  "APP_ENV": {"local": "local", "production": "production"},
//	  "CACHE_TTL": 300
//	}
//
// Insertion order of per-environment entries is kept because a value that
// lacks the target environment falls back to its first entry. Variable names
// are returned in natural order (KEY_2 before KEY_10).
package envspec
