package stratum

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/stratumcfg/stratum/source"
)

// LayerSpec pairs a named source adapter with its role in the stack. Build
// one with Layer or WritableLayer.
type LayerSpec struct {
	name     string
	src      source.Source
	writable bool
}

// Layer declares a read-resolved layer. The name identifies the layer in
// provenance results and error messages.
func Layer(name string, src source.Source) LayerSpec {
	return LayerSpec{name: name, src: src}
}

// WritableLayer declares the layer that receives writes. A stack holds at
// most one; its adapter must implement source.Writer.
func WritableLayer(name string, src source.Source) LayerSpec {
	return LayerSpec{name: name, src: src, writable: true}
}

type layerEntry struct {
	name   string
	src    source.Source
	writer source.Writer // nil unless the write target
}

// stack is the resolution engine: an ordered list of adapters scanned from
// the highest-precedence end.
type stack struct {
	layers   []layerEntry // index 0 = lowest precedence
	writable int          // index into layers, -1 if none
	logger   *zap.Logger
}

// New assembles a stack from layers listed lowest precedence first: the last
// listed layer overrides all earlier ones. The stack is fixed afterwards;
// only the contents behind each adapter may change.
func New(layers ...LayerSpec) (*Config, error) {
	s := &stack{
		layers:   make([]layerEntry, 0, len(layers)),
		writable: -1,
		logger:   zap.NewNop(),
	}
	seen := make(map[string]bool, len(layers))
	for i, spec := range layers {
		if spec.name == "" {
			return nil, fmt.Errorf("layer %d: name must not be empty", i)
		}
		if seen[spec.name] {
			return nil, fmt.Errorf("duplicate layer name %q", spec.name)
		}
		seen[spec.name] = true
		entry := layerEntry{name: spec.name, src: spec.src}
		if spec.writable {
			if s.writable >= 0 {
				return nil, fmt.Errorf("layer %q: stack already has writable layer %q",
					spec.name, s.layers[s.writable].name)
			}
			w, ok := spec.src.(source.Writer)
			if !ok {
				return nil, fmt.Errorf("layer %q: adapter does not support writes", spec.name)
			}
			entry.writer = w
			s.writable = i
		}
		s.layers = append(s.layers, entry)
	}
	return &Config{stack: s}, nil
}

// ResolvedValue is a lookup result together with the layer that produced it.
type ResolvedValue struct {
	Path  string
	Value any
	Layer string

	typed bool
}

// resolve scans layers from highest precedence down and returns the first
// defined value. A tombstone ends the scan as not-found; adapter failures
// propagate untouched so an unreachable layer can never masquerade as an
// absent one.
func (s *stack) resolve(p source.Path) (ResolvedValue, error) {
	for i := len(s.layers) - 1; i >= 0; i-- {
		l := s.layers[i]
		lk, err := l.src.Read(p)
		if err != nil {
			return ResolvedValue{}, fmt.Errorf("layer %q: %w", l.name, err)
		}
		if lk.Tombstone {
			return ResolvedValue{}, fmt.Errorf("%q: unset by layer %q: %w",
				p.String(), l.name, ErrNotFound)
		}
		if lk.Found {
			return ResolvedValue{
				Path:  p.String(),
				Value: lk.Value,
				Layer: l.name,
				typed: lk.Typed,
			}, nil
		}
	}
	return ResolvedValue{}, fmt.Errorf("%q: %w", p.String(), ErrNotFound)
}

// typedSample finds the highest-precedence typed value for p. It is the type
// oracle for coercing raw strings: the winning layer supplies the value, the
// closest typed layer (usually the defaults) supplies the type. Failing
// layers are skipped here — typing is best-effort once a value has already
// been resolved.
func (s *stack) typedSample(p source.Path) (any, bool) {
	for i := len(s.layers) - 1; i >= 0; i-- {
		l := s.layers[i]
		lk, err := l.src.Read(p)
		if err != nil {
			s.logger.Debug("type scan skipping layer",
				zap.String("layer", l.name),
				zap.String("path", p.String()),
				zap.Error(err))
			continue
		}
		if lk.Found && lk.Typed && !lk.Tombstone {
			return lk.Value, true
		}
	}
	return nil, false
}
