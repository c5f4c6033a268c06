package analyzer

import (
	"slices"
	"strings"

	"expunch/syntax"
)

// Reserved path segments.
const (
	SegmentCrate = "crate"
	SegmentSuper = "super"
	SegmentSelf  = "self"
)

// ModulePath is a module's position in the module tree, one segment per
// level.
type ModulePath []string

func (p ModulePath) Equal(q ModulePath) bool {
	return slices.Equal(p, q)
}

func (p ModulePath) String() string {
	return strings.Join(p, "::")
}

// join returns prefix followed by suffix without aliasing prefix.
func join(prefix ModulePath, suffix ...string) ModulePath {
	out := make(ModulePath, 0, len(prefix)+len(suffix))
	return append(append(out, prefix...), suffix...)
}

// LocationKind classifies what a module path resolves to on disk.
type LocationKind int

const (
	LocationUnresolved LocationKind = iota
	LocationFile
	LocationDir
)

func (k LocationKind) String() string {
	switch k {
	case LocationFile:
		return "file"
	case LocationDir:
		return "dir"
	}
	return "unresolved"
}

// Location is the result of resolving a module path.
type Location struct {
	Kind LocationKind
	// Parts is the normalized module path: crate and self segments removed,
	// super segments applied. Leading super segments remain when the path
	// climbs above the tree root.
	Parts ModulePath
	// Path is the backing file or directory; empty when unresolved.
	Path string
}

// Access tells whether a collected path names an import target or only a
// segment leading to one.
type Access int

const (
	AccessLeaf Access = iota
	AccessIntermediate
)

// ModuleItem is a module path referenced from a use tree.
type ModuleItem struct {
	Location
	Access Access
}

// ReplacementSpan replaces a region of a source file on emission. An
// empty Replacement deletes the region.
type ReplacementSpan struct {
	Start       syntax.Position
	End         syntax.Position
	Replacement string
}

// Crate is the resolution identity of a compilation unit.
type Crate struct {
	// Name is what the `crate` segment expands to in rewritten imports.
	Name string
	// Root is the module path of the unit's root module.
	Root ModulePath
	// RootFile is the unit's root source file.
	RootFile string
}

// Package is the library package modules may reach by crate name.
type Package struct {
	Name       string
	SourceRoot string
	LibFile    string
}

// Scope is the context a single source file is analyzed in.
type Scope struct {
	// Prefix is the module path of the file being analyzed.
	Prefix ModulePath
	Crate  Crate
}

// SourceFile is a file included in the flattened output.
type SourceFile struct {
	Path       string
	ModulePath ModulePath
}
