package source

// Defaults is the in-memory adapter for values embedded in code. It holds
// typed values, so besides seeding the lowest layer of a stack it supplies
// the type information used to coerce raw strings read from other layers.
//
// Defaults is writable: programmatic overrides that should not persist
// anywhere can be routed to it.
type Defaults struct {
	tree map[string]any
}

// NewDefaults seeds the adapter from a nested map. Child map[string]any
// values become sections, everything else becomes a key's value. The map is
// deep-copied so later mutation of the argument does not leak in.
func NewDefaults(values map[string]any) *Defaults {
	return &Defaults{tree: copyTree(values)}
}

func (d *Defaults) Read(p Path) (Lookup, error) { return treeRead(d.tree, p) }

func (d *Defaults) Keys(p Path) ([]string, error) { return treeKeys(d.tree, p) }

func (d *Defaults) Sections(p Path) ([]string, error) { return treeSections(d.tree, p) }

func (d *Defaults) Write(p Path, value any) error { return treeWrite(d.tree, p, value) }
func (d *Defaults) Delete(p Path) error           { return treeDelete(d.tree, p) }

func copyTree(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		if child, ok := v.(map[string]any); ok {
			dst[k] = copyTree(child)
			continue
		}
		dst[k] = v
	}
	return dst
}

var (
	_ Source = (*Defaults)(nil)
	_ Writer = (*Defaults)(nil)
)
