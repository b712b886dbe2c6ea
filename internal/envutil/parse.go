// Package envutil reads flat key/value files: .env style files through
// godotenv, plus flat JSON and YAML documents for defaults files.
package envutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"envgen/internal/errs"

	"github.com/joho/godotenv"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ParseFile parses a .env style file into a flat map. Values are kept
// literally: $NAME and ${NAME} are not expanded.
func ParseFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.New(errs.UnreadableFile, path, "", err)
	}

	vars, err := ParseString(string(data))
	if err != nil {
		return nil, errs.New(errs.UnreadableFile, path, "not a valid key-value file", err)
	}
	return vars, nil
}

// ParseString parses .env style text into a flat map without variable expansion.
func ParseString(content string) (map[string]string, error) {
	// godotenv expands $NAME from earlier lines of the same text and empties
	// unknown names, so '$' is hidden from it behind an unused rune.
	mark := unusedRune(content)
	if mark == "" {
		return godotenv.Unmarshal(content)
	}

	vars, err := godotenv.Unmarshal(strings.ReplaceAll(content, "$", mark))
	if err != nil {
		return nil, err
	}
	for k, v := range vars {
		vars[k] = strings.ReplaceAll(v, mark, "$")
	}
	return vars, nil
}

// unusedRune returns a private use character that does not occur in s.
func unusedRune(s string) string {
	for r := rune(0xE000); r <= 0xF8FF; r++ {
		if !strings.ContainsRune(s, r) {
			return string(r)
		}
	}
	return ""
}

// ReadFlatFile parses a defaults file into a flat map, choosing the format
// from the extension: .json, .yaml/.yml, anything else is a .env file.
func ReadFlatFile(path string) (map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return readFlatJSON(path)
	case ".yaml", ".yml":
		return readFlatYAML(path)
	default:
		return ParseFile(path)
	}
}

func readFlatJSON(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.New(errs.UnreadableFile, path, "", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, errs.New(errs.MalformedJSON, path, "", nil)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, errs.New(errs.MalformedJSON, path, "expected a JSON object", nil)
	}

	vars := make(map[string]string)
	var bad error
	doc.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.String:
			vars[key.String()] = value.Str
		case gjson.Number:
			vars[key.String()] = value.Raw
		case gjson.True, gjson.False:
			vars[key.String()] = value.String()
		case gjson.Null:
			vars[key.String()] = "null"
		default:
			bad = errs.New(errs.MalformedJSON, path, fmt.Sprintf("value of '%s' is not a scalar", key.String()), nil)
			return false
		}
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return vars, nil
}

func readFlatYAML(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.New(errs.UnreadableFile, path, "", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errs.New(errs.UnreadableFile, path, "not a valid YAML mapping", err)
	}

	vars := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			vars[key] = "null"
		case map[string]any, []any:
			return nil, errs.New(errs.UnreadableFile, path, fmt.Sprintf("value of '%s' is not a scalar", key), nil)
		default:
			vars[key] = fmt.Sprint(v)
		}
	}
	return vars, nil
}

// SortedKeys returns the keys of vars in byte order, for stable log output.
func SortedKeys(vars map[string]string) []string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
