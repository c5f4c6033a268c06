package analyzer

import (
	"expunch/syntax"
)

// substituteCrate returns a copy of tree with every `crate` segment
// replaced by name.
func substituteCrate(tree syntax.UseTree, name string) syntax.UseTree {
	rename := func(ident string) string {
		if ident == SegmentCrate {
			return name
		}
		return ident
	}
	switch t := tree.(type) {
	case *syntax.UsePath:
		return &syntax.UsePath{Ident: rename(t.Ident), Tree: substituteCrate(t.Tree, name)}
	case *syntax.UseName:
		return &syntax.UseName{Ident: rename(t.Ident)}
	case *syntax.UseRename:
		return &syntax.UseRename{Ident: rename(t.Ident), Rename: t.Rename}
	case *syntax.UseGroup:
		group := &syntax.UseGroup{Items: make([]syntax.UseTree, 0, len(t.Items))}
		for _, item := range t.Items {
			group.Items = append(group.Items, substituteCrate(item, name))
		}
		return group
	}
	return tree
}

// dropRootImports removes the imports of the crate root itself from a use
// tree of the entry file: a lone `crate` or library crate name, and `self`
// directly under a first segment. It returns nil when nothing remains.
func dropRootImports(tree syntax.UseTree, libName string, depth int) syntax.UseTree {
	switch t := tree.(type) {
	case *syntax.UsePath:
		if sub := dropRootImports(t.Tree, libName, depth+1); sub != nil {
			return &syntax.UsePath{Ident: t.Ident, Tree: sub}
		}
		if depth == 0 {
			return nil
		}
		return &syntax.UseName{Ident: t.Ident}
	case *syntax.UseName:
		if depth == 0 && (t.Ident == SegmentCrate || t.Ident == libName) {
			return nil
		}
		if depth == 1 && t.Ident == SegmentSelf {
			return nil
		}
	case *syntax.UseGroup:
		group := &syntax.UseGroup{Items: make([]syntax.UseTree, 0, len(t.Items))}
		for _, item := range t.Items {
			if kept := dropRootImports(item, libName, depth); kept != nil {
				group.Items = append(group.Items, kept)
			}
		}
		return group
	}
	return tree
}

// rewriteUse returns the text replacing u in the flattened output. When the
// rewrite changes nothing the original text is returned as written.
func rewriteUse(u *syntax.ItemUse, src []byte, crateName, libName string, entry bool) string {
	tree := substituteCrate(u.Tree, crateName)
	if entry {
		if tree = dropRootImports(tree, libName, 0); tree == nil {
			return ""
		}
	}
	rewritten := syntax.FormatUse(u, tree)
	if rewritten == syntax.FormatUse(u, u.Tree) {
		return string(src[u.Span.Lo:u.Span.Hi])
	}
	return rewritten
}
