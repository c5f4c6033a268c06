package analyzer

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"unicode/utf8"

	"expunch/fsys"
	"expunch/syntax"
)

// Analyzer discovers the modules reachable from an entry file and records
// how each file must be rewritten.
type Analyzer struct {
	fs       fsys.FS
	pkg      Package
	resolver *Resolver
	tree     *Tree
	files    []SourceFile
	baseDir  string

	crateVis    string
	crateVisSet bool

	logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger; nil disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = logger{l: l} }
}

// WithBaseDir sets the directory paths are shown relative to in logs.
func WithBaseDir(dir string) Option {
	return func(a *Analyzer) { a.baseDir = dir }
}

// New returns an Analyzer resolving the library crate pkg through fs.
func New(fs fsys.FS, pkg Package, opts ...Option) *Analyzer {
	a := &Analyzer{fs: fs, pkg: pkg, tree: NewTree()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Tree returns the module tree. It is complete once AnalyzeSourceFile
// returns without error.
func (a *Analyzer) Tree() *Tree { return a.tree }

// Files returns the analyzed files in discovery order.
func (a *Analyzer) Files() []SourceFile { return a.files }

// CrateVisibility returns the visibility of the first top-level use of the
// library crate in the entry file, if there was one.
func (a *Analyzer) CrateVisibility() (string, bool) {
	return a.crateVis, a.crateVisSet
}

// AnalyzeSourceFile analyzes the entry file at path and everything it
// reaches.
func (a *Analyzer) AnalyzeSourceFile(path string) error {
	a.resolver = NewResolver(a.fs, a.pkg, filepath.Dir(path))
	a.tree.Register(nil, path)
	entry := Scope{Crate: Crate{Name: SegmentCrate, RootFile: path}}
	if err := a.analyzeFile(path, entry); err != nil {
		return err
	}
	a.tree.Finalize()
	a.debug("module graph analyzed", slog.Int("files", len(a.files)))
	return nil
}

func (a *Analyzer) libCrate(rootFile string) Crate {
	return Crate{Name: a.pkg.Name, Root: ModulePath{a.pkg.Name}, RootFile: rootFile}
}

func (a *Analyzer) readFile(path string) ([]byte, error) {
	src, err := a.fs.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, &PathError{Kind: ErrNotFound, Path: path, Err: err}
	case err != nil:
		return nil, &PathError{Kind: ErrRead, Path: path, Err: err}
	}
	return src, nil
}

func (a *Analyzer) analyzeFile(path string, scope Scope) error {
	src, err := a.readFile(path)
	if err != nil {
		return err
	}
	if !utf8.Valid(src) {
		return &PathError{Kind: ErrParse, Path: path, Err: errInvalidUTF8}
	}
	file, err := syntax.Parse(src)
	if err != nil {
		return &PathError{Kind: ErrParse, Path: path, Err: err}
	}
	a.files = append(a.files, SourceFile{Path: path, ModulePath: scope.Prefix})
	a.debug("analyzing source file",
		slog.String("path", RelativePath(a.baseDir, path)),
		slog.String("module", scope.Prefix.String()),
		slog.String("crate", scope.Crate.Name))

	for _, item := range file.Items {
		switch it := item.(type) {
		case *syntax.ItemUse:
			err = a.analyzeUse(it, src, scope)
		case *syntax.ItemMod:
			if !it.Inline {
				err = a.analyzeMod(it, scope)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeUse(it *syntax.ItemUse, src []byte, scope Scope) error {
	collectScope := scope
	if it.LeadingColon {
		collectScope.Prefix = nil
	}
	items, err := a.resolver.Collect(it.Tree, collectScope)
	if err != nil {
		return err
	}

	top := len(scope.Prefix) == 0
	for _, m := range items {
		isLib := m.Parts.Equal(ModulePath{a.pkg.Name})
		if m.Kind == LocationFile {
			next := scope.Crate
			if isLib {
				next = a.libCrate(m.Path)
			}
			if err := a.visit(m.Parts, m.Path, next); err != nil {
				return err
			}
		}
		if isLib && top && !a.crateVisSet {
			a.crateVis, a.crateVisSet = it.Vis, true
		}
	}

	a.tree.AppendSpan(scope.Prefix, ReplacementSpan{
		Start:       it.Span.Start,
		End:         it.Span.End,
		Replacement: rewriteUse(it, src, scope.Crate.Name, a.pkg.Name, top),
	})
	return nil
}

func (a *Analyzer) analyzeMod(it *syntax.ItemMod, scope Scope) error {
	loc, err := a.resolver.Resolve(join(scope.Prefix, it.Ident), scope.Crate)
	if err != nil {
		return err
	}
	if loc.Kind != LocationFile {
		return nil
	}
	a.tree.AppendSpan(scope.Prefix, ReplacementSpan{Start: it.Span.Start, End: it.Span.End})
	// Declaring a submodule never leaves the current crate.
	return a.visit(loc.Parts, loc.Path, scope.Crate)
}

// visit registers file at parts and analyzes it unless the module was
// already registered.
func (a *Analyzer) visit(parts ModulePath, file string, crate Crate) error {
	if existing, seen := a.tree.Register(parts, file); seen {
		a.debug("module already analyzed",
			slog.String("module", parts.String()),
			slog.String("path", RelativePath(a.baseDir, existing)))
		return nil
	}
	return a.analyzeFile(file, Scope{Prefix: parts, Crate: crate})
}
