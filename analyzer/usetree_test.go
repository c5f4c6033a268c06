package analyzer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expunch/fsys"
	"expunch/internal/testutil"
	"expunch/syntax"
)

func parseUseTree(t *testing.T, src string) syntax.UseTree {
	t.Helper()
	file, err := syntax.Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, file.Items, 1)
	u, ok := file.Items[0].(*syntax.ItemUse)
	require.True(t, ok, "not a use declaration: %T", file.Items[0])
	return u.Tree
}

func TestCollect(t *testing.T) {
	dir := testutil.WriteArchive(t, resolveArchive)
	bin := filepath.Join(dir, "bin")
	r := NewResolver(fsys.OS{}, testPackage(dir), bin)
	scope := Scope{Crate: entryCrate(dir)}

	type item struct {
		parts  string
		kind   LocationKind
		access Access
	}
	tests := []struct {
		name string
		src  string
		want []item
	}{
		{
			name: "self and name in a group",
			src:  "use crate::util::{self, noop};",
			want: []item{
				{"", LocationFile, AccessIntermediate},
				{"util", LocationFile, AccessIntermediate},
				{"util::noop", LocationUnresolved, AccessLeaf},
			},
		},
		{
			name: "glob adds nothing",
			src:  "use crate::feature::*;",
			want: []item{
				{"", LocationFile, AccessIntermediate},
				{"feature", LocationFile, AccessIntermediate},
			},
		},
		{
			name: "rename is a leaf",
			src:  "use util as helpers;",
			want: []item{
				{"util", LocationFile, AccessLeaf},
			},
		},
		{
			name: "first occurrence wins",
			src:  "use {util, crate::util::noop};",
			want: []item{
				{"util", LocationFile, AccessLeaf},
				{"", LocationFile, AccessIntermediate},
				{"util::noop", LocationUnresolved, AccessLeaf},
			},
		},
		{
			name: "library before its modules",
			src:  "use libpkg::shape::{Circle, detail};",
			want: []item{
				{"libpkg", LocationFile, AccessIntermediate},
				{"libpkg::shape", LocationFile, AccessIntermediate},
				{"libpkg::shape::Circle", LocationUnresolved, AccessLeaf},
				{"libpkg::shape::detail", LocationFile, AccessLeaf},
			},
		},
		{
			name: "nested groups",
			src:  "use feature::{nested::{self}, run};",
			want: []item{
				{"feature", LocationFile, AccessIntermediate},
				{"feature::nested", LocationFile, AccessIntermediate},
				{"feature::run", LocationUnresolved, AccessLeaf},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := r.Collect(parseUseTree(t, tt.src), scope)
			require.NoError(t, err)
			var got []item
			for _, it := range items {
				got = append(got, item{it.Parts.String(), it.Kind, it.Access})
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollectUsesScopePrefix(t *testing.T) {
	dir := testutil.WriteArchive(t, resolveArchive)
	r := NewResolver(fsys.OS{}, testPackage(dir), filepath.Join(dir, "bin"))

	items, err := r.Collect(parseUseTree(t, "use super::util::noop;"), Scope{
		Prefix: ModulePath{"feature"},
		Crate:  entryCrate(dir),
	})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, ModulePath{}, items[0].Parts)
	assert.Equal(t, ModulePath{"util"}, items[1].Parts)
	assert.Equal(t, filepath.Join(dir, "bin", "util.rs"), items[1].Path)
	assert.Equal(t, AccessIntermediate, items[1].Access)
}

func TestCollectAboveTreeRoot(t *testing.T) {
	dir := testutil.WriteArchive(t, resolveArchive)
	r := NewResolver(fsys.OS{}, testPackage(dir), filepath.Join(dir, "bin"))

	items, err := r.Collect(parseUseTree(t, "use {super::util, util};"), Scope{Crate: entryCrate(dir)})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, ModulePath{"super"}, items[0].Parts)
	assert.Equal(t, ModulePath{"super", "util"}, items[1].Parts)
	assert.Equal(t, LocationUnresolved, items[1].Kind)
	// a climbing path never shadows the module of the same name
	assert.Equal(t, ModulePath{"util"}, items[2].Parts)
	assert.Equal(t, LocationFile, items[2].Kind)
}
