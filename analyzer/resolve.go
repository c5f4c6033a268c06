package analyzer

import (
	"path/filepath"
	"strings"

	"expunch/fsys"
)

const (
	// SourceExt is the extension of a module's file.
	SourceExt = ".rs"
	// DirModuleFile is the file standing for a directory module.
	DirModuleFile = "mod.rs"
)

// Resolver maps module paths to files.
type Resolver struct {
	fs  fsys.FS
	pkg Package
	// baseDir holds the submodules of the entry file.
	baseDir string
}

// NewResolver returns a Resolver for an entry file in baseDir.
func NewResolver(fs fsys.FS, pkg Package, baseDir string) *Resolver {
	return &Resolver{fs: fs, pkg: pkg, baseDir: baseDir}
}

// Resolve walks parts from the module tree root and classifies what the
// path names on disk. crate decides where the `crate` segment leads. A
// path climbing above the tree root is unresolved; climbing above the
// filesystem root fails with ErrRootOverrun.
func (r *Resolver) Resolve(parts ModulePath, crate Crate) (Location, error) {
	acc := r.baseDir
	norm := ModulePath{}
	// rootFile is set while the path ends at a crate root.
	rootFile := ""
	for _, seg := range parts {
		rootFile = ""
		switch {
		case seg == SegmentCrate:
			acc = filepath.Dir(crate.RootFile)
			norm = join(crate.Root)
			rootFile = crate.RootFile
		case seg == r.pkg.Name && seg != "":
			acc = r.pkg.SourceRoot
			norm = ModulePath{seg}
			rootFile = r.pkg.LibFile
		case seg == SegmentSuper:
			parent := filepath.Dir(acc)
			if parent == acc {
				return Location{}, &PathError{Kind: ErrRootOverrun, Path: acc}
			}
			acc = parent
			// above the tree root the super segments are kept
			if len(norm) == 0 || norm[len(norm)-1] == SegmentSuper {
				norm = append(norm, SegmentSuper)
			} else {
				norm = norm[:len(norm)-1]
			}
		case seg == SegmentSelf:
		default:
			acc = filepath.Join(acc, strings.TrimPrefix(seg, "r#"))
			norm = append(norm, seg)
		}
	}

	loc := Location{Parts: norm}
	if len(norm) > 0 && norm[0] == SegmentSuper {
		return loc, nil
	}
	switch {
	case rootFile != "" && r.fs.IsFile(rootFile):
		loc.Kind, loc.Path = LocationFile, rootFile
	case r.fs.IsFile(acc + SourceExt):
		loc.Kind, loc.Path = LocationFile, acc+SourceExt
	case r.fs.IsDir(acc):
		if mod := filepath.Join(acc, DirModuleFile); r.fs.IsFile(mod) {
			loc.Kind, loc.Path = LocationFile, mod
		} else {
			loc.Kind, loc.Path = LocationDir, acc
		}
	}
	return loc, nil
}
