package envspec

import (
	"fmt"
	"os"
	"sort"

	"envgen/internal/errs"

	"github.com/fvbommel/sortorder"
	"github.com/tidwall/gjson"
)

// Kind is the JSON kind of a scalar.
type Kind int

const (
	String Kind = iota
	Number
	Bool
	Null
)

// Scalar is a single JSON scalar. Text holds the string value for String,
// the JSON source text for Number, "true"/"false" for Bool and "" for Null.
type Scalar struct {
	Kind Kind
	Text string
}

// StringValue returns a String scalar.
func StringValue(s string) Scalar { return Scalar{Kind: String, Text: s} }

// NumberValue returns a Number scalar from its JSON text.
func NumberValue(raw string) Scalar { return Scalar{Kind: Number, Text: raw} }

// BoolValue returns a Bool scalar.
func BoolValue(b bool) Scalar {
	if b {
		return Scalar{Kind: Bool, Text: "true"}
	}
	return Scalar{Kind: Bool, Text: "false"}
}

// NullValue returns the Null scalar.
func NullValue() Scalar { return Scalar{Kind: Null} }

// EnvEntry is one environment branch of a per-environment value.
type EnvEntry struct {
	Name  string
	Value Scalar
}

// Value is either a scalar or a per-environment map, never both.
type Value struct {
	Scalar Scalar
	// Envs is non-nil for per-environment values, in source order.
	Envs []EnvEntry
}

// IsPerEnvironment reports whether v is a per-environment map.
func (v Value) IsPerEnvironment() bool { return v.Envs != nil }

// ScalarOf wraps a scalar as a Value.
func ScalarOf(s Scalar) Value { return Value{Scalar: s} }

// PerEnvironment builds a per-environment Value from entries in order.
func PerEnvironment(entries ...EnvEntry) Value {
	if entries == nil {
		entries = []EnvEntry{}
	}
	return Value{Envs: entries}
}

// Spec is the decoded source: variable name to value.
type Spec struct {
	Values map[string]Value
	keys   []string
}

// Keys returns the variable names in natural order.
func (s *Spec) Keys() []string {
	return s.keys
}

// Len returns the number of variables.
func (s *Spec) Len() int { return len(s.keys) }

// New builds a Spec from values, sorting keys naturally.
func New(values map[string]Value) *Spec {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	SortKeys(keys)
	return &Spec{Values: values, keys: keys}
}

// SortKeys sorts variable names in natural (numeric-aware) order.
func SortKeys(keys []string) {
	sort.Sort(sortorder.Natural(keys))
}

// LoadFile reads and decodes a source file.
func LoadFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(errs.MissingInputFile, path, "", err)
		}
		return nil, errs.New(errs.UnreadableFile, path, "", err)
	}
	spec, err := Decode(data)
	if err != nil {
		if e, ok := err.(*errs.Error); ok && e.Path == "" {
			e.Path = path
		}
		return nil, err
	}
	return spec, nil
}

// Decode parses a source document.
func Decode(data []byte) (*Spec, error) {
	if !gjson.ValidBytes(data) {
		return nil, errs.New(errs.MalformedJSON, "", "", nil)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, errs.New(errs.MalformedJSON, "", "top level value must be an object", nil)
	}

	values := make(map[string]Value)
	var bad error
	doc.ForEach(func(key, raw gjson.Result) bool {
		name := key.String()
		if _, dup := values[name]; dup {
			bad = errs.New(errs.MalformedJSON, "", fmt.Sprintf("duplicate key '%s'", name), nil)
			return false
		}
		v, err := decodeValue(name, raw)
		if err != nil {
			bad = err
			return false
		}
		values[name] = v
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return New(values), nil
}

func decodeValue(name string, raw gjson.Result) (Value, error) {
	if raw.IsObject() {
		entries := []EnvEntry{}
		seen := make(map[string]bool)
		var bad error
		raw.ForEach(func(env, inner gjson.Result) bool {
			envName := env.String()
			if seen[envName] {
				bad = errs.New(errs.MalformedJSON, "", fmt.Sprintf("duplicate environment '%s.%s'", name, envName), nil)
				return false
			}
			seen[envName] = true
			s, err := decodeScalar(name+"."+envName, inner)
			if err != nil {
				bad = err
				return false
			}
			entries = append(entries, EnvEntry{Name: envName, Value: s})
			return true
		})
		if bad != nil {
			return Value{}, bad
		}
		return PerEnvironment(entries...), nil
	}

	s, err := decodeScalar(name, raw)
	if err != nil {
		return Value{}, err
	}
	return ScalarOf(s), nil
}

func decodeScalar(name string, raw gjson.Result) (Scalar, error) {
	switch raw.Type {
	case gjson.String:
		return StringValue(raw.Str), nil
	case gjson.Number:
		return NumberValue(raw.Raw), nil
	case gjson.True:
		return BoolValue(true), nil
	case gjson.False:
		return BoolValue(false), nil
	case gjson.Null:
		return NullValue(), nil
	}
	return Scalar{}, errs.New(errs.MalformedJSON, "", fmt.Sprintf("unsupported nested value for '%s'", name), nil)
}
