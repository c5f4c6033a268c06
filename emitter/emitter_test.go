package emitter

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expunch/analyzer"
	"expunch/fsys"
	"expunch/internal/testutil"
	"expunch/syntax"
)

func pos(line, col int) syntax.Position {
	return syntax.Position{Line: line, Column: col}
}

func testPackage(dir string) analyzer.Package {
	return analyzer.Package{
		Name:       "libpkg",
		SourceRoot: filepath.Join(dir, "src"),
		LibFile:    filepath.Join(dir, "src", "lib.rs"),
	}
}

func expand(t *testing.T, archive string, opts ...Option) string {
	t.Helper()
	dir := testutil.WriteArchive(t, archive)
	a := analyzer.New(fsys.OS{}, testPackage(dir))
	require.NoError(t, a.AnalyzeSourceFile(filepath.Join(dir, "bin", "main.rs")))

	opts = append([]Option{WithCrateVisibility(a.CrateVisibility())}, opts...)
	var buf bytes.Buffer
	require.NoError(t, New(fsys.OS{}, "libpkg", opts...).Emit(&buf, a.Tree()))
	return buf.String()
}

func TestEmitDeclaredModule(t *testing.T) {
	got := expand(t, `
-- src/lib.rs --
pub mod shape;
-- src/shape.rs --
pub struct Circle;
-- bin/main.rs --
mod util; fn main() {}
-- bin/util.rs --
pub fn noop() {}
`)
	assert.Equal(t, " fn main() {}\n\npub mod util {\npub fn noop() {}\n}\n", got)
}

func TestEmitLibrary(t *testing.T) {
	got := expand(t, `
-- src/lib.rs --
pub mod shape;
pub mod consts;
pub use crate::shape::Circle;
-- src/shape.rs --
use crate::consts::N;
pub struct Circle;
-- src/consts.rs --
pub const N: u32 = 3;
-- bin/main.rs --
use libpkg::shape::Circle;
fn main() {}
`)
	want := `use libpkg::shape::Circle;
fn main() {}

mod libpkg {


pub use libpkg::shape::Circle;

pub mod shape {
use libpkg::consts::N;
pub struct Circle;
}

pub mod consts {
pub const N: u32 = 3;
}
}
`
	assert.Equal(t, want, got)
}

func TestEmitVisibility(t *testing.T) {
	archive := `
-- src/lib.rs --
-- bin/main.rs --
pub use libpkg;
mod util;
-- bin/util.rs --
fn noop() {}
`
	assert.Equal(t, "\n\n\npub mod libpkg {\n}\n\npub mod util {\nfn noop() {}\n}\n", expand(t, archive))
	assert.Equal(t, "\n\n\npub mod libpkg {\n}\n\nmod util {\nfn noop() {}\n}\n", expand(t, archive, WithVisibility("")))
	assert.Equal(t, "\n\n\npub mod libpkg {\n}\n\npub(crate) mod util {\nfn noop() {}\n}\n", expand(t, archive, WithVisibility("pub(crate)")))
}

func TestEmitUnresolvedModuleKept(t *testing.T) {
	got := expand(t, `
-- src/lib.rs --
-- bin/main.rs --
mod missing;
use std::io;
`)
	assert.Equal(t, "mod missing;\nuse std::io;\n", got)
}

func writeTree(t *testing.T, src string, spans ...analyzer.ReplacementSpan) string {
	t.Helper()
	dir := testutil.WriteArchive(t, "-- main.rs --\n"+src)
	tree := analyzer.NewTree()
	tree.Register(nil, filepath.Join(dir, "main.rs"))
	for _, s := range spans {
		tree.AppendSpan(nil, s)
	}
	tree.Finalize()

	var buf bytes.Buffer
	require.NoError(t, New(fsys.OS{}, "libpkg").Emit(&buf, tree))
	return buf.String()
}

func TestReplaySpans(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		spans []analyzer.ReplacementSpan
		want  string
	}{
		{
			name: "no spans",
			src:  "fn a() {}\nfn b() {}\n",
			want: "fn a() {}\nfn b() {}\n",
		},
		{
			name: "several spans on one line",
			src:  "mod a; mod b; fn main() {}\n",
			spans: []analyzer.ReplacementSpan{
				{Start: pos(1, 7), End: pos(1, 13)},
				{Start: pos(1, 0), End: pos(1, 6), Replacement: "X"},
			},
			want: "X  fn main() {}\n",
		},
		{
			name: "span across lines keeps the line count",
			src:  "use a::{\n    b,\n    c,\n}; fn x() {}\nfn y() {}\n",
			spans: []analyzer.ReplacementSpan{
				{Start: pos(1, 0), End: pos(4, 2), Replacement: "use z::{b, c};"},
			},
			want: "use z::{b, c};\n\n\n fn x() {}\nfn y() {}\n",
		},
		{
			name: "columns count characters",
			src:  "// ツール\nlet s = \"日本\"; mod m;\n",
			spans: []analyzer.ReplacementSpan{
				{Start: pos(2, 14), End: pos(2, 20)},
			},
			want: "// ツール\nlet s = \"日本\"; \n",
		},
		{
			name: "columns past the line end are clamped",
			src:  "mod m;\n",
			spans: []analyzer.ReplacementSpan{
				{Start: pos(1, 0), End: pos(1, 40), Replacement: "//"},
			},
			want: "//\n",
		},
		{
			name: "missing trailing newline",
			src:  "mod m;",
			spans: []analyzer.ReplacementSpan{
				{Start: pos(1, 0), End: pos(1, 6)},
			},
			want: "\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, writeTree(t, tt.src, tt.spans...))
		})
	}
}

func TestEmitMissingFile(t *testing.T) {
	tree := analyzer.NewTree()
	missing := filepath.Join(t.TempDir(), "gone.rs")
	tree.Register(nil, missing)

	var buf bytes.Buffer
	err := New(fsys.OS{}, "libpkg").Emit(&buf, tree)
	require.ErrorIs(t, err, analyzer.ErrNotFound)
	assert.Contains(t, err.Error(), missing)
}
