package source

import "strings"

// Path addresses one logical configuration value: a sequence of section names
// terminating in a key name. The same Path form is used against every
// adapter regardless of its native addressing scheme.
type Path []string

// ParsePath splits a dotted path like "server.http.port" into its segments.
// Empty segments are dropped, so ParsePath("") is the root path.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ".")
	p := make(Path, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			p = append(p, part)
		}
	}
	return p
}

// String renders the path in dotted form.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Key returns the final segment, the key name. Empty for the root path.
func (p Path) Key() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parent returns the path without its final segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Child returns a copy of p extended by one segment.
func (p Path) Child(name string) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, name)
}
