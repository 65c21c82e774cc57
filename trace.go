package stratum

// TraceEntry reports how one layer answered a lookup during a Trace.
type TraceEntry struct {
	Layer     string
	Value     any
	Found     bool
	Tombstone bool
	Err       error
}

// Trace queries every layer for the path, highest precedence first, without
// short-circuiting. It exists for diagnostics — explaining where a value
// comes from and which layers it shadows — and deliberately keeps going past
// failures so one unreachable backend does not hide the rest of the picture.
func (c *Config) Trace(path string) []TraceEntry {
	p := c.abs(path)
	entries := make([]TraceEntry, 0, len(c.stack.layers))
	for i := len(c.stack.layers) - 1; i >= 0; i-- {
		l := c.stack.layers[i]
		lk, err := l.src.Read(p)
		entries = append(entries, TraceEntry{
			Layer:     l.name,
			Value:     lk.Value,
			Found:     lk.Found,
			Tombstone: lk.Tombstone,
			Err:       err,
		})
	}
	return entries
}

// Layers reports the stack's layer names in precedence order, highest first.
func (c *Config) Layers() []string {
	names := make([]string, 0, len(c.stack.layers))
	for i := len(c.stack.layers) - 1; i >= 0; i-- {
		names = append(names, c.stack.layers[i].name)
	}
	return names
}

// WritableLayerName reports the name of the designated write target, or ""
// when the stack has none.
func (c *Config) WritableLayerName() string {
	if c.stack.writable < 0 {
		return ""
	}
	return c.stack.layers[c.stack.writable].name
}
