// Package ident holds the small value-object identifiers shared across the
// engine: file paths, unqualified names, and fully-qualified function
// handles built from the two.
package ident

import "fmt"

// Path is an opaque file-system path. Equality is path-identity: two
// textually distinct paths to the same file on disk are two distinct Paths.
// No canonicalization is performed anywhere in this package or its callers;
// if canonicalization is ever required, it belongs at the call site that
// first constructs a Path (e.g. the CLI's argument handling), not here.
type Path struct {
	raw string
}

// NewPath wraps a raw path string.
func NewPath(raw string) Path {
	return Path{raw: raw}
}

// String returns the underlying path text.
func (p Path) String() string {
	return p.raw
}

// IsZero reports whether this is the zero-value Path.
func (p Path) IsZero() bool {
	return p.raw == ""
}

// Name is a short unqualified identifier: a variable, function, or import
// name as it appears in source.
type Name struct {
	raw string
}

// NewName wraps a raw identifier string.
func NewName(raw string) Name {
	return Name{raw: raw}
}

// String returns the underlying identifier text.
func (n Name) String() string {
	return n.raw
}

// FQ is a fully-qualified function handle: the file that defines it plus
// the name it is defined under. FQ is the key used by the process-wide
// function registry and appears in diagnostics.
type FQ struct {
	Path Path
	Name Name
}

// NewFQ builds a fully-qualified identifier.
func NewFQ(path Path, name Name) FQ {
	return FQ{Path: path, Name: name}
}

// String renders "path::name", used for diagnostics and as the seed for the
// registry's radix-tree key encoding.
func (f FQ) String() string {
	return fmt.Sprintf("%s::%s", f.Path.String(), f.Name.String())
}

// Bytes encodes FQ as a byte string suitable as an adaptive-radix-tree key:
// path, a NUL separator, then name. NUL cannot appear in either a file path
// or a Tel identifier, so this encoding is injective.
func (f FQ) Bytes() []byte {
	p := f.Path.String()
	n := f.Name.String()
	buf := make([]byte, 0, len(p)+1+len(n))
	buf = append(buf, p...)
	buf = append(buf, 0)
	buf = append(buf, n...)
	return buf
}
