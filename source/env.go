package source

import (
	"os"
	"sort"
	"strings"
)

// Environment adapts process environment variables as a read-only source.
//
// The naming transform is a stable, operator-facing contract: path segments
// are joined with "_" and upper-cased, with dashes mapped to underscores,
// under an optional prefix. With prefix "MYAPP", the path server.port reads
// MYAPP_SERVER_PORT. The transform is lossy — an underscore inside a key
// name is indistinguishable from a section boundary when enumerating — so
// key names should avoid underscores where enumeration matters.
type Environment struct {
	prefix       string
	emptyIsUnset bool
}

// EnvOption configures an Environment adapter.
type EnvOption func(*Environment)

// EmptyIsUnset makes a variable set to the empty string act as a tombstone,
// letting operators mask a value defined by a lower layer.
func EmptyIsUnset() EnvOption {
	return func(e *Environment) { e.emptyIsUnset = true }
}

// NewEnvironment creates the adapter. An empty prefix exposes the whole
// environment; a non-empty prefix is normalized to end with "_".
func NewEnvironment(prefix string, opts ...EnvOption) *Environment {
	prefix = strings.ToUpper(prefix)
	if prefix != "" && !strings.HasSuffix(prefix, "_") {
		prefix += "_"
	}
	e := &Environment{prefix: prefix}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// VarName returns the environment variable the adapter reads for a path.
func (e *Environment) VarName(p Path) string {
	joined := strings.Join(p, "_")
	joined = strings.ReplaceAll(joined, "-", "_")
	return e.prefix + strings.ToUpper(joined)
}

func (e *Environment) Read(p Path) (Lookup, error) {
	if len(p) == 0 {
		return Lookup{}, nil
	}
	val, ok := os.LookupEnv(e.VarName(p))
	if !ok {
		return Lookup{}, nil
	}
	if e.emptyIsUnset && val == "" {
		return Lookup{Found: true, Tombstone: true}, nil
	}
	return Lookup{Value: val, Found: true}, nil
}

func (e *Environment) Keys(p Path) ([]string, error) {
	keys, _ := e.enumerate(p)
	return keys, nil
}

func (e *Environment) Sections(p Path) ([]string, error) {
	_, sections := e.enumerate(p)
	return sections, nil
}

func (e *Environment) enumerate(p Path) (keys, sections []string) {
	want := e.prefix
	if len(p) > 0 {
		want = e.VarName(p) + "_"
	}
	seenKey := make(map[string]bool)
	seenSection := make(map[string]bool)
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if want != "" && !strings.HasPrefix(name, want) {
			continue
		}
		rest := strings.TrimPrefix(name, want)
		if rest == "" {
			continue
		}
		head, tail, nested := strings.Cut(rest, "_")
		lower := strings.ToLower(head)
		if nested && tail != "" {
			if !seenSection[lower] {
				seenSection[lower] = true
				sections = append(sections, lower)
			}
			continue
		}
		if !seenKey[lower] {
			seenKey[lower] = true
			keys = append(keys, lower)
		}
	}
	sort.Strings(keys)
	sort.Strings(sections)
	return keys, sections
}

var _ Source = (*Environment)(nil)
