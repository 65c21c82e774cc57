package source

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/stratumcfg/stratum/coerce"
)

// INIFile adapts an INI file as a configuration source. Nesting maps onto
// dotted section headers: the path server.http.port addresses key "port" in
// section [server.http]. Keys outside any section header belong to the root.
// INI stores only strings, so values are untyped and writes go through the
// canonical serialization.
type INIFile struct {
	path   string
	loaded bool
	f      *ini.File
}

// NewINIFile creates the adapter. The file is not touched until first read.
func NewINIFile(path string) *INIFile {
	return &INIFile{path: path}
}

func (s *INIFile) ensure() (*ini.File, error) {
	if s.loaded {
		return s.f, nil
	}
	// LooseLoad treats a missing file as empty, matching the other file
	// adapters.
	f, err := ini.LooseLoad(s.path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	s.f = f
	s.loaded = true
	return s.f, nil
}

// Reload discards the cached file. It is re-read on next access.
func (s *INIFile) Reload() error {
	s.loaded = false
	s.f = nil
	return nil
}

func sectionName(p Path) string {
	if len(p) == 0 {
		return ini.DefaultSection
	}
	return strings.Join(p, ".")
}

func (s *INIFile) Read(p Path) (Lookup, error) {
	f, err := s.ensure()
	if err != nil {
		return Lookup{}, err
	}
	if len(p) == 0 {
		return Lookup{}, fmt.Errorf("read %q: %w", p.String(), ErrTypeMismatch)
	}
	if _, err := f.GetSection(strings.Join(p, ".")); err == nil {
		return Lookup{}, fmt.Errorf("read %q: %w", p.String(), ErrTypeMismatch)
	}
	sec, err := f.GetSection(sectionName(p.Parent()))
	if err != nil {
		return Lookup{}, nil
	}
	if !sec.HasKey(p.Key()) {
		return Lookup{}, nil
	}
	return Lookup{Value: sec.Key(p.Key()).Value(), Found: true}, nil
}

func (s *INIFile) Keys(p Path) ([]string, error) {
	f, err := s.ensure()
	if err != nil {
		return nil, err
	}
	sec, err := f.GetSection(sectionName(p))
	if err != nil {
		return nil, nil
	}
	keys := sec.KeyStrings()
	sort.Strings(keys)
	return keys, nil
}

func (s *INIFile) Sections(p Path) ([]string, error) {
	f, err := s.ensure()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var names []string
	for _, name := range f.SectionStrings() {
		if name == ini.DefaultSection {
			continue
		}
		segs := strings.Split(name, ".")
		if len(segs) <= len(p) {
			continue
		}
		match := true
		for i, want := range p {
			if segs[i] != want {
				match = false
				break
			}
		}
		if match && !seen[segs[len(p)]] {
			seen[segs[len(p)]] = true
			names = append(names, segs[len(p)])
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *INIFile) Write(p Path, value any) error {
	f, err := s.ensure()
	if err != nil {
		return err
	}
	if len(p) == 0 {
		return fmt.Errorf("write %q: %w", p.String(), ErrTypeMismatch)
	}
	if _, err := f.GetSection(strings.Join(p, ".")); err == nil {
		return fmt.Errorf("write %q: target is a section: %w", p.String(), ErrTypeMismatch)
	}
	raw, err := coerce.Serialize(value)
	if err != nil {
		return fmt.Errorf("write %q: %w", p.String(), err)
	}
	f.Section(sectionName(p.Parent())).Key(p.Key()).SetValue(raw)
	return s.save()
}

func (s *INIFile) Delete(p Path) error {
	f, err := s.ensure()
	if err != nil {
		return err
	}
	if len(p) == 0 {
		return fmt.Errorf("delete %q: %w", p.String(), ErrTypeMismatch)
	}
	sec, err := f.GetSection(sectionName(p.Parent()))
	if err != nil || !sec.HasKey(p.Key()) {
		return nil
	}
	sec.DeleteKey(p.Key())
	return s.save()
}

func (s *INIFile) save() error {
	if err := s.f.SaveTo(s.path); err != nil {
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	return nil
}

var (
	_ Source   = (*INIFile)(nil)
	_ Writer   = (*INIFile)(nil)
	_ Reloader = (*INIFile)(nil)
)
