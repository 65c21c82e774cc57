// Package source defines the capability contract every configuration backend
// implements to participate in a layered stack, along with the built-in
// adapters: in-memory defaults, INI/JSON/YAML files, process environment, and
// pre-parsed command-line arguments. The remote key-value store adapter lives
// in the source/etcd subpackage.
//
// Adapters expose a minimal surface — read a path, enumerate a section,
// optionally write — and keep all format-specific parsing to themselves. The
// resolution engine only ever calls this contract, never a backend-specific
// method.
//
// Adapters are not internally synchronized. Concurrent use of one stack
// requires external serialization by the caller.
package source

import "errors"

var (
	// ErrUnavailable reports that a networked backend could not be reached
	// or did not answer in time. It is recoverable by retrying and must
	// never be conflated with a key simply being absent.
	ErrUnavailable = errors.New("configuration backend unavailable")

	// ErrTypeMismatch reports a path that addresses a section where a key
	// was expected, or traverses a segment that exists as a plain key.
	ErrTypeMismatch = errors.New("path addresses a key as a section or vice versa")
)

// Lookup is the result of reading one path from one adapter.
type Lookup struct {
	// Value is the raw value. String-backed adapters (INI, environment,
	// command line, remote store) always yield strings; tree-backed
	// adapters (defaults, JSON, YAML) yield typed values.
	Value any

	// Found reports whether the adapter defines the path at all.
	Found bool

	// Tombstone marks an explicit "unset here" that suppresses values from
	// lower-priority layers. A tombstone is Found.
	Tombstone bool

	// Typed reports whether Value carries native type information rather
	// than an uninterpreted string.
	Typed bool
}

// Source is the read side of the capability contract.
type Source interface {
	// Read returns the value at path, Found=false if the adapter does not
	// define it. Unreachable backends return ErrUnavailable, never a
	// not-found result.
	Read(p Path) (Lookup, error)

	// Keys lists key names directly inside the section at path. A section
	// the adapter does not define yields an empty list, not an error.
	Keys(p Path) ([]string, error)

	// Sections lists child section names directly inside the section at
	// path, with the same absence semantics as Keys.
	Sections(p Path) ([]string, error)
}

// Writer is the optional write side. Adapters over read-only backends simply
// do not implement it.
type Writer interface {
	// Write upserts the value at path, creating intermediate sections as
	// needed.
	Write(p Path, value any) error

	// Delete removes the key at path. Deleting an absent key is a no-op.
	Delete(p Path) error
}

// Reloader is implemented by adapters with an explicit cache (file-backed
// ones). Reload discards the cache so the next access re-reads the backend.
type Reloader interface {
	Reload() error
}
