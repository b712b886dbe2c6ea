// Package render turns resolved values into .env lines.
package render

import (
	"regexp"
	"strings"

	"envgen/internal/constants"
	"envgen/internal/envspec"
)

// Class is the formatting class of a value, checked in declaration order.
type Class int

const (
	Empty Class = iota
	Null
	Number
	Bool
	Text
)

func (c Class) String() string {
	switch c {
	case Empty:
		return "empty"
	case Null:
		return "null"
	case Number:
		return "number"
	case Bool:
		return "bool"
	}
	return "text"
}

var (
	numericPattern     = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
	placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)
)

// needsQuoting lists every character that forces a value into double quotes.
const needsQuoting = " \t\r\n\v\f=#\\$(){}[]`\"'"

// Classify returns the formatting class of s.
func Classify(s envspec.Scalar) Class {
	switch {
	case s.Kind == envspec.String && s.Text == "":
		return Empty
	case s.Kind == envspec.Null, s.Kind == envspec.String && s.Text == "null":
		return Null
	case s.Kind == envspec.Number, s.Kind == envspec.String && numericPattern.MatchString(s.Text):
		return Number
	case s.Kind == envspec.Bool:
		return Bool
	}
	return Text
}

// Render formats one variable as a line ending in "\n". A value in defaults
// replaces the resolved value. Keys in pinned are commented out because the
// pinned block at the end of the file sets them.
func Render(key string, resolved envspec.Scalar, defaults map[string]string, pinned map[string]bool) string {
	value := resolved
	if override, ok := defaults[key]; ok {
		value = envspec.StringValue(override)
	}

	line := key + "=" + FormatValue(value, defaults)
	if pinned[key] {
		line = "#" + line
	}
	return line + "\n"
}

// FormatValue returns the right hand side of a line for s.
func FormatValue(s envspec.Scalar, defaults map[string]string) string {
	switch Classify(s) {
	case Empty:
		return ""
	case Null:
		return "null"
	case Number, Bool:
		return s.Text
	}
	return Quote(Substitute(s.Text, defaults))
}

// Substitute replaces the first {{NAME}} placeholder in s with defaults[NAME].
// Only the first placeholder is considered; it is left alone when NAME has no default.
func Substitute(s string, defaults map[string]string) string {
	loc := placeholderPattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	value, ok := defaults[s[loc[2]:loc[3]]]
	if !ok {
		return s
	}
	return s[:loc[0]] + value + s[loc[1]:]
}

// Quote wraps s in double quotes, escaping embedded double quotes, when it
// contains whitespace or a shell-significant character.
func Quote(s string) string {
	if !strings.ContainsAny(s, needsQuoting) {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// Prefix returns the group prefix of a key: the text before the first '_',
// or the whole key.
func Prefix(key string) string {
	prefix, _, _ := strings.Cut(key, "_")
	return prefix
}

// Lines renders every key for env in key order, with a
// blank line between groups of differing prefix.
func Lines(spec *envspec.Spec, env string, defaults map[string]string, pinned map[string]bool) string {
	var sb strings.Builder
	previous := ""
	for i, key := range spec.Keys() {
		prefix := Prefix(key)
		if i > 0 && prefix != previous {
			sb.WriteString("\n")
		}
		previous = prefix
		sb.WriteString(Render(key, envspec.Resolve(spec.Values[key], env), defaults, pinned))
	}
	return sb.String()
}

// Document returns the complete output file: banner, rendered lines and the
// pinned block, which is appended unmodified.
func Document(spec *envspec.Spec, env string, defaults map[string]string, pinned map[string]bool, pinnedBlock string) string {
	return constants.OutputBanner + Lines(spec, env, defaults, pinned) + pinnedBlock
}
