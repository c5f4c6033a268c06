package analyzer

import (
	"expunch/syntax"
)

type collector struct {
	r     *Resolver
	scope Scope
	seen  map[string]bool
	items []ModuleItem
}

// Collect resolves every module path a use tree mentions, in depth-first
// order. Paths followed by more segments are AccessIntermediate; imported
// names and renames are AccessLeaf. Globs add nothing. A normalized path
// is reported once, with the access of its first occurrence.
func (r *Resolver) Collect(tree syntax.UseTree, scope Scope) ([]ModuleItem, error) {
	c := &collector{r: r, scope: scope, seen: make(map[string]bool)}
	if err := c.walk(tree, nil); err != nil {
		return nil, err
	}
	return c.items, nil
}

func (c *collector) walk(tree syntax.UseTree, stack []string) error {
	switch t := tree.(type) {
	case *syntax.UsePath:
		stack = append(stack, t.Ident)
		if err := c.add(stack, AccessIntermediate); err != nil {
			return err
		}
		return c.walk(t.Tree, stack)
	case *syntax.UseName:
		return c.add(append(stack, t.Ident), AccessLeaf)
	case *syntax.UseRename:
		return c.add(append(stack, t.Ident), AccessLeaf)
	case *syntax.UseGroup:
		for _, item := range t.Items {
			if err := c.walk(item, stack); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *collector) add(stack []string, access Access) error {
	loc, err := c.r.Resolve(join(c.scope.Prefix, stack...), c.scope.Crate)
	if err != nil {
		return err
	}
	key := loc.Parts.String()
	if c.seen[key] {
		return nil
	}
	c.seen[key] = true
	c.items = append(c.items, ModuleItem{Location: loc, Access: access})
	return nil
}
