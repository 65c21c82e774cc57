package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/stratumcfg/stratum/coerce"
)

// file is the common core of the tree-backed file adapters. The backing file
// is read once, lazily, on first access and the decoded tree is cached until
// Reload discards it. Caching is adapter-local state, never shared globally.
//
// A missing file is an empty tree, not an error: configs routinely reference
// files that only exist in some environments. Writes persist the whole tree
// back through the adapter's encoder immediately.
type file struct {
	path   string
	decode func([]byte) (map[string]any, error)
	encode func(map[string]any) ([]byte, error)
	loaded bool
	tree   map[string]any
}

func (f *file) ensure() (map[string]any, error) {
	if f.loaded {
		return f.tree, nil
	}
	data, err := os.ReadFile(f.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		f.tree = make(map[string]any)
	case err != nil:
		return nil, fmt.Errorf("load %s: %w", f.path, err)
	default:
		tree, decErr := f.decode(data)
		if decErr != nil {
			return nil, fmt.Errorf("parse %s: %w", f.path, decErr)
		}
		if tree == nil {
			tree = make(map[string]any)
		}
		f.tree = tree
	}
	f.loaded = true
	return f.tree, nil
}

// Reload discards the cached tree. The file is re-read on next access.
func (f *file) Reload() error {
	f.loaded = false
	f.tree = nil
	return nil
}

func (f *file) save() error {
	data, err := f.encode(f.tree)
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", f.path, err)
	}
	return nil
}

func (f *file) Read(p Path) (Lookup, error) {
	tree, err := f.ensure()
	if err != nil {
		return Lookup{}, err
	}
	return treeRead(tree, p)
}

func (f *file) Keys(p Path) ([]string, error) {
	tree, err := f.ensure()
	if err != nil {
		return nil, err
	}
	return treeKeys(tree, p)
}

func (f *file) Sections(p Path) ([]string, error) {
	tree, err := f.ensure()
	if err != nil {
		return nil, err
	}
	return treeSections(tree, p)
}

func (f *file) Write(p Path, value any) error {
	tree, err := f.ensure()
	if err != nil {
		return err
	}
	if err := treeWrite(tree, p, fileValue(value)); err != nil {
		return err
	}
	return f.save()
}

func (f *file) Delete(p Path) error {
	tree, err := f.ensure()
	if err != nil {
		return err
	}
	if err := treeDelete(tree, p); err != nil {
		return err
	}
	return f.save()
}

// fileValue keeps persisted trees within the canonical value grammar: times
// and durations are stored in their serialized string form, everything else
// has a native YAML/JSON representation.
func fileValue(v any) any {
	switch v.(type) {
	case time.Time, time.Duration:
		if s, err := coerce.Serialize(v); err == nil {
			return s
		}
	}
	return v
}

// YAMLFile adapts a YAML document as a configuration source. Nested mappings
// are sections; scalar and sequence values are typed.
type YAMLFile struct {
	file
}

// NewYAMLFile creates the adapter. The file is not touched until first read.
func NewYAMLFile(path string) *YAMLFile {
	return &YAMLFile{file{
		path: path,
		decode: func(data []byte) (map[string]any, error) {
			var tree map[string]any
			if err := yaml.Unmarshal(data, &tree); err != nil {
				return nil, err
			}
			return tree, nil
		},
		encode: func(tree map[string]any) ([]byte, error) {
			return yaml.Marshal(tree)
		},
	}}
}

// JSONFile adapts a JSON document as a configuration source, with the same
// section and typing semantics as YAMLFile.
type JSONFile struct {
	file
}

// NewJSONFile creates the adapter. The file is not touched until first read.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{file{
		path: path,
		decode: func(data []byte) (map[string]any, error) {
			var tree map[string]any
			if err := json.Unmarshal(data, &tree); err != nil {
				return nil, err
			}
			return tree, nil
		},
		encode: func(tree map[string]any) ([]byte, error) {
			return json.MarshalIndent(tree, "", "  ")
		},
	}}
}

var (
	_ Source   = (*YAMLFile)(nil)
	_ Writer   = (*YAMLFile)(nil)
	_ Reloader = (*YAMLFile)(nil)
	_ Source   = (*JSONFile)(nil)
	_ Writer   = (*JSONFile)(nil)
	_ Reloader = (*JSONFile)(nil)
)
