package stratum

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/stratumcfg/stratum/source"
)

// Config is the unified view applications read and write through. The root
// view spans the whole tree; Sub returns views bound to a section prefix.
// All views share one underlying stack.
type Config struct {
	stack  *stack
	prefix source.Path
}

// WithLogger attaches a logger for resolution diagnostics. Call it once,
// right after New, before the stack is in use.
func (c *Config) WithLogger(l *zap.Logger) *Config {
	if l != nil {
		c.stack.logger = l
	}
	return c
}

func (c *Config) abs(path string) source.Path {
	rel := source.ParsePath(path)
	if len(c.prefix) == 0 {
		return rel
	}
	p := make(source.Path, 0, len(c.prefix)+len(rel))
	p = append(p, c.prefix...)
	return append(p, rel...)
}

// Sub returns a view rooted at the given section path. The section does not
// have to exist yet; it may become visible after a Reload or a write.
func (c *Config) Sub(path string) *Config {
	return &Config{stack: c.stack, prefix: c.abs(path)}
}

// Prefix reports the dotted section path this view is bound to. Empty for
// the root view.
func (c *Config) Prefix() string {
	return c.prefix.String()
}

// Get resolves the value at a dotted path against the stack. Raw string
// values are coerced to the type of the same key in the closest typed layer
// when one exists; otherwise the raw value is returned as-is.
func (c *Config) Get(path string) (any, error) {
	p := c.abs(path)
	rv, err := c.stack.resolve(p)
	if err != nil {
		return nil, err
	}
	if rv.typed {
		return rv.Value, nil
	}
	if sample, ok := c.stack.typedSample(p); ok {
		v, err := coerceLike(rv.Value, sample)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p.String(), err)
		}
		return v, nil
	}
	return rv.Value, nil
}

// Resolve is Get plus provenance: which layer supplied the effective value.
func (c *Config) Resolve(path string) (ResolvedValue, error) {
	return c.stack.resolve(c.abs(path))
}

// Has reports whether any layer defines the path, respecting tombstones. It
// never fails: a layer that cannot be read (an unreachable backend, a type
// conflict) cannot confirm the path and is skipped. Use Get when the
// distinction between absent and unavailable matters.
func (c *Config) Has(path string) bool {
	p := c.abs(path)
	for i := len(c.stack.layers) - 1; i >= 0; i-- {
		l := c.stack.layers[i]
		lk, err := l.src.Read(p)
		if err != nil {
			c.stack.logger.Debug("has: skipping unreadable layer",
				zap.String("layer", l.name),
				zap.String("path", p.String()),
				zap.Error(err))
			continue
		}
		if lk.Tombstone {
			return false
		}
		if lk.Found {
			return true
		}
	}
	return false
}

// Set routes a write to the stack's writable layer. Precedence is not
// affected: a higher layer that also defines the path keeps winning lookups.
func (c *Config) Set(path string, value any) error {
	p := c.abs(path)
	target, err := c.writeTarget(p)
	if err != nil {
		return err
	}
	if err := target.writer.Write(p, value); err != nil {
		return fmt.Errorf("set %q via layer %q: %w",
			p.String(), target.name, errors.Join(ErrWriteRejected, err))
	}
	return nil
}

// Unset deletes the key from the writable layer. Values for the same path in
// other layers are untouched and become visible again.
func (c *Config) Unset(path string) error {
	p := c.abs(path)
	target, err := c.writeTarget(p)
	if err != nil {
		return err
	}
	if err := target.writer.Delete(p); err != nil {
		return fmt.Errorf("unset %q via layer %q: %w",
			p.String(), target.name, errors.Join(ErrWriteRejected, err))
	}
	return nil
}

func (c *Config) writeTarget(p source.Path) (layerEntry, error) {
	if c.stack.writable < 0 {
		return layerEntry{}, fmt.Errorf("set %q: %w", p.String(), ErrNotWritable)
	}
	return c.stack.layers[c.stack.writable], nil
}

// KeyInfo names a key visible at a section together with the layer that owns
// its effective value.
type KeyInfo struct {
	Name  string
	Layer string
}

// Keys lists the union of all layers' keys at the section — a key defined
// only by the lowest layer is still visible unless a tombstone suppresses
// it. Results are sorted by name.
func (c *Config) Keys(path string) ([]KeyInfo, error) {
	p := c.abs(path)
	union, err := c.unionNames(p, source.Source.Keys)
	if err != nil {
		return nil, err
	}
	infos := make([]KeyInfo, 0, len(union))
	for _, name := range union {
		rv, err := c.stack.resolve(p.Child(name))
		if errors.Is(err, ErrNotFound) {
			// Tombstoned, or gone between enumeration and resolution.
			continue
		}
		if err != nil {
			return nil, err
		}
		infos = append(infos, KeyInfo{Name: name, Layer: rv.Layer})
	}
	return infos, nil
}

// Sections lists the union of all layers' child sections at the path,
// sorted. An empty section in one layer never hides another layer's content.
func (c *Config) Sections(path string) ([]string, error) {
	return c.unionNames(c.abs(path), source.Source.Sections)
}

func (c *Config) unionNames(p source.Path, list func(source.Source, source.Path) ([]string, error)) ([]string, error) {
	seen := make(map[string]bool)
	var union []string
	for i := len(c.stack.layers) - 1; i >= 0; i-- {
		l := c.stack.layers[i]
		names, err := list(l.src, p)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", l.name, err)
		}
		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				union = append(union, name)
			}
		}
	}
	sort.Strings(union)
	return union, nil
}

// Reload asks every adapter with an explicit cache to discard it. Adapters
// without caches are unaffected.
func (c *Config) Reload() error {
	var errs []error
	for _, l := range c.stack.layers {
		if r, ok := l.src.(source.Reloader); ok {
			if err := r.Reload(); err != nil {
				errs = append(errs, fmt.Errorf("layer %q: %w", l.name, err))
			}
		}
	}
	return errors.Join(errs...)
}
