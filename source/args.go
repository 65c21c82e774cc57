package source

import (
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

// Args adapts a pre-parsed command-line argument map as a read-only source.
// Argument grammar is the flag parser's business; the adapter only sees
// dotted paths mapped to raw string values. Flags the user asked to unset
// become tombstones, masking values from lower layers.
type Args struct {
	values map[string]string
	unset  map[string]bool
}

// NewArgs creates the adapter from dotted-path keyed raw values.
func NewArgs(values map[string]string) *Args {
	a := &Args{
		values: make(map[string]string, len(values)),
		unset:  make(map[string]bool),
	}
	for k, v := range values {
		a.values[k] = v
	}
	return a
}

// FromFlagSet builds an Args layer from the flags the user actually changed.
// Flag names are taken as dotted paths: --server.port=9000 defines
// server.port. Untouched flags contribute nothing, so flag defaults do not
// shadow lower layers.
func FromFlagSet(fs *pflag.FlagSet) *Args {
	a := NewArgs(nil)
	fs.Visit(func(f *pflag.Flag) {
		a.values[f.Name] = f.Value.String()
	})
	return a
}

// Unset marks a dotted path as explicitly cleared. The adapter reports a
// tombstone there, suppressing lower layers.
func (a *Args) Unset(path string) {
	a.unset[path] = true
}

func (a *Args) Read(p Path) (Lookup, error) {
	dotted := p.String()
	if a.unset[dotted] {
		return Lookup{Found: true, Tombstone: true}, nil
	}
	if v, ok := a.values[dotted]; ok {
		return Lookup{Value: v, Found: true}, nil
	}
	return Lookup{}, nil
}

func (a *Args) Keys(p Path) ([]string, error) {
	keys, _ := a.enumerate(p)
	return keys, nil
}

func (a *Args) Sections(p Path) ([]string, error) {
	_, sections := a.enumerate(p)
	return sections, nil
}

func (a *Args) enumerate(p Path) (keys, sections []string) {
	prefix := ""
	if len(p) > 0 {
		prefix = p.String() + "."
	}
	seenKey := make(map[string]bool)
	seenSection := make(map[string]bool)
	collect := func(dotted string) {
		if !strings.HasPrefix(dotted, prefix) {
			return
		}
		rest := strings.TrimPrefix(dotted, prefix)
		if rest == "" {
			return
		}
		head, _, nested := strings.Cut(rest, ".")
		if nested {
			if !seenSection[head] {
				seenSection[head] = true
				sections = append(sections, head)
			}
			return
		}
		if !seenKey[head] {
			seenKey[head] = true
			keys = append(keys, head)
		}
	}
	for dotted := range a.values {
		collect(dotted)
	}
	for dotted := range a.unset {
		collect(dotted)
	}
	sort.Strings(keys)
	sort.Strings(sections)
	return keys, sections
}

var _ Source = (*Args)(nil)
