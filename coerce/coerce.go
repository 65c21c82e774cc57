// Package coerce converts raw configuration values (typically strings read
// from flat backends such as INI files, environment variables, or a remote
// key-value store) into the caller's expected Go type, and serializes typed
// values back into the canonical string form those backends store.
//
// Coerce and Serialize are exact inverses for every supported kind: for any
// value v of kind k, Coerce(Serialize(v), k) == v. Coercing a value that
// already has the target type returns it unchanged.
package coerce

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind identifies a coercion target type.
type Kind int

const (
	String Kind = iota
	Bool
	Int
	Float
	Date
	DateTime
	Duration
	StringList
	IntList
)

// Canonical string layouts. These are a public contract: backends that only
// store strings (INI, environment, remote store) hold values in exactly this
// form.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"

	// ListSeparator delimits list elements in serialized form. Elements are
	// trimmed of surrounding whitespace when parsed, so elements themselves
	// must not contain the separator or significant edge whitespace.
	ListSeparator = ","
)

var kindNames = map[Kind]string{
	String:     "string",
	Bool:       "bool",
	Int:        "int",
	Float:      "float",
	Date:       "date",
	DateTime:   "datetime",
	Duration:   "duration",
	StringList: "string list",
	IntList:    "int list",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a user-facing type name (as accepted by the CLI --type flag)
// to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "string", "str":
		return String, nil
	case "bool", "boolean":
		return Bool, nil
	case "int", "integer":
		return Int, nil
	case "float", "number":
		return Float, nil
	case "date":
		return Date, nil
	case "datetime":
		return DateTime, nil
	case "duration":
		return Duration, nil
	case "list", "strings":
		return StringList, nil
	case "ints":
		return IntList, nil
	}
	return String, fmt.Errorf("unknown type name %q", name)
}

// CoercionError reports a raw value that does not parse as the target kind.
// The raw value and target are retained for diagnostics.
type CoercionError struct {
	Raw    any
	Target Kind
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot coerce %v (%T) to %s", e.Raw, e.Raw, e.Target)
}

func failed(raw any, target Kind) error {
	return &CoercionError{Raw: raw, Target: target}
}

var boolWords = map[string]bool{
	"true": true, "yes": true, "1": true,
	"false": false, "no": false, "0": false,
}

// Coerce converts raw into the kind's Go representation: string, bool, int,
// float64, time.Time, time.Duration, []string, or []int. A raw value that
// already has the target type is returned as-is.
func Coerce(raw any, k Kind) (any, error) {
	switch k {
	case String:
		if s, ok := raw.(string); ok {
			return s, nil
		}
		// Any supported typed value has a canonical string form.
		s, err := Serialize(raw)
		if err != nil {
			return nil, failed(raw, k)
		}
		return s, nil

	case Bool:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			if b, ok := boolWords[strings.ToLower(strings.TrimSpace(v))]; ok {
				return b, nil
			}
		}
		return nil, failed(raw, k)

	case Int:
		switch v := raw.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case float64:
			// JSON and YAML decoders hand integers back as float64.
			if v == float64(int(v)) {
				return int(v), nil
			}
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n, nil
			}
		}
		return nil, failed(raw, k)

	case Float:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f, nil
			}
		}
		return nil, failed(raw, k)

	case Date:
		switch v := raw.(type) {
		case time.Time:
			return v, nil
		case string:
			if t, err := time.Parse(DateLayout, strings.TrimSpace(v)); err == nil {
				return t, nil
			}
		}
		return nil, failed(raw, k)

	case DateTime:
		switch v := raw.(type) {
		case time.Time:
			return v, nil
		case string:
			s := strings.TrimSpace(v)
			if t, err := time.Parse(DateTimeLayout, s); err == nil {
				return t, nil
			}
			// A date-only serialization is a valid datetime at midnight.
			if t, err := time.Parse(DateLayout, s); err == nil {
				return t, nil
			}
		}
		return nil, failed(raw, k)

	case Duration:
		switch v := raw.(type) {
		case time.Duration:
			return v, nil
		case string:
			if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
				return d, nil
			}
		}
		return nil, failed(raw, k)

	case StringList:
		switch v := raw.(type) {
		case []string:
			return v, nil
		case []any:
			out := make([]string, len(v))
			for i, e := range v {
				s, ok := e.(string)
				if !ok {
					return nil, failed(raw, k)
				}
				out[i] = s
			}
			return out, nil
		case string:
			return splitList(v), nil
		}
		return nil, failed(raw, k)

	case IntList:
		switch v := raw.(type) {
		case []int:
			return v, nil
		case []any:
			out := make([]int, len(v))
			for i, e := range v {
				n, err := Coerce(e, Int)
				if err != nil {
					return nil, failed(raw, k)
				}
				out[i] = n.(int)
			}
			return out, nil
		case string:
			parts := splitList(v)
			out := make([]int, len(parts))
			for i, p := range parts {
				n, err := strconv.Atoi(p)
				if err != nil {
					return nil, failed(raw, k)
				}
				out[i] = n
			}
			return out, nil
		}
		return nil, failed(raw, k)
	}
	return nil, failed(raw, k)
}

// Serialize renders a typed value into the canonical string form Coerce
// accepts. It is the exact inverse of Coerce for every supported kind.
func Serialize(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case time.Duration:
		return val.String(), nil
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format(DateLayout), nil
		}
		return val.Format(DateTimeLayout), nil
	case []string:
		return strings.Join(val, ListSeparator), nil
	case []int:
		parts := make([]string, len(val))
		for i, n := range val {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, ListSeparator), nil
	}
	return "", fmt.Errorf("no string form for %v (%T)", v, v)
}

// KindOf reports the coercion kind matching a typed value, or false for types
// outside the supported set.
func KindOf(v any) (Kind, bool) {
	switch t := v.(type) {
	case string:
		return String, true
	case bool:
		return Bool, true
	case int, int64:
		return Int, true
	case float64:
		return Float, true
	case time.Duration:
		return Duration, true
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return Date, true
		}
		return DateTime, true
	case []string:
		return StringList, true
	case []int:
		return IntList, true
	}
	return String, false
}

// Like coerces raw to the dynamic type of sample. It is how the resolution
// engine types an untyped raw value using a registered default: the default
// supplies the type, the winning layer supplies the value. Samples of
// unsupported types return the raw value unchanged.
func Like(raw, sample any) (any, error) {
	k, ok := KindOf(sample)
	if !ok {
		return raw, nil
	}
	if k == Date {
		// A date-valued sample still admits full datetimes.
		k = DateTime
	}
	return Coerce(raw, k)
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ListSeparator)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}
