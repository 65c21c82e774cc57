package source

import (
	"fmt"
	"sort"
)

// Shared traversal over the nested map[string]any form used by the
// tree-backed adapters (defaults, JSON, YAML). A child map is a section,
// anything else is a key's value.

func treeRead(root map[string]any, p Path) (Lookup, error) {
	if len(p) == 0 {
		return Lookup{}, fmt.Errorf("read %q: %w", p.String(), ErrTypeMismatch)
	}
	section, ok, err := treeSection(root, p.Parent())
	if err != nil || !ok {
		return Lookup{}, err
	}
	v, ok := section[p.Key()]
	if !ok {
		return Lookup{}, nil
	}
	if _, isSection := v.(map[string]any); isSection {
		return Lookup{}, fmt.Errorf("read %q: %w", p.String(), ErrTypeMismatch)
	}
	return Lookup{Value: v, Found: true, Typed: true}, nil
}

// treeSection walks to the section at p. Absent sections report ok=false; a
// plain key in the middle of the walk is a type mismatch.
func treeSection(root map[string]any, p Path) (map[string]any, bool, error) {
	cur := root
	for i, seg := range p {
		v, ok := cur[seg]
		if !ok {
			return nil, false, nil
		}
		m, ok := v.(map[string]any)
		if !ok {
			return nil, false, fmt.Errorf("segment %q of %q is a key, not a section: %w",
				seg, Path(p[:i+1]).String(), ErrTypeMismatch)
		}
		cur = m
	}
	return cur, true, nil
}

func treeKeys(root map[string]any, p Path) ([]string, error) {
	section, ok, err := treeSection(root, p)
	if err != nil || !ok {
		return nil, err
	}
	var keys []string
	for name, v := range section {
		if _, isSection := v.(map[string]any); !isSection {
			keys = append(keys, name)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func treeSections(root map[string]any, p Path) ([]string, error) {
	section, ok, err := treeSection(root, p)
	if err != nil || !ok {
		return nil, err
	}
	var names []string
	for name, v := range section {
		if _, isSection := v.(map[string]any); isSection {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func treeWrite(root map[string]any, p Path, value any) error {
	if len(p) == 0 {
		return fmt.Errorf("write %q: %w", p.String(), ErrTypeMismatch)
	}
	cur := root
	for i, seg := range p.Parent() {
		v, ok := cur[seg]
		if !ok {
			m := make(map[string]any)
			cur[seg] = m
			cur = m
			continue
		}
		m, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("segment %q of %q is a key, not a section: %w",
				seg, Path(p[:i+1]).String(), ErrTypeMismatch)
		}
		cur = m
	}
	if existing, ok := cur[p.Key()]; ok {
		if _, isSection := existing.(map[string]any); isSection {
			return fmt.Errorf("write %q: target is a section: %w", p.String(), ErrTypeMismatch)
		}
	}
	cur[p.Key()] = value
	return nil
}

func treeDelete(root map[string]any, p Path) error {
	if len(p) == 0 {
		return fmt.Errorf("delete %q: %w", p.String(), ErrTypeMismatch)
	}
	section, ok, err := treeSection(root, p.Parent())
	if err != nil || !ok {
		return err
	}
	if v, ok := section[p.Key()]; ok {
		if _, isSection := v.(map[string]any); isSection {
			return fmt.Errorf("delete %q: target is a section: %w", p.String(), ErrTypeMismatch)
		}
		delete(section, p.Key())
	}
	return nil
}
