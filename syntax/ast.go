package syntax

// File is a parsed source file.
type File struct {
	Items []Item
}

// Item is a top-level item. Its span covers outer attributes and doc
// comments as well as the item itself.
type Item interface {
	ItemSpan() Span
}

// ItemUse is a `use` declaration.
type ItemUse struct {
	Span Span
	// Attrs holds the source text of each outer attribute or doc comment.
	Attrs []string
	// Vis is the visibility qualifier as written, e.g. "pub(crate)", or "".
	Vis          string
	LeadingColon bool
	Tree         UseTree
}

// ItemMod is a `mod` declaration, with or without an inline body.
type ItemMod struct {
	Span   Span
	Attrs  []string
	Vis    string
	Ident  string
	Inline bool
}

// ItemOther is any other item. Only its extent is recorded.
type ItemOther struct {
	Span Span
}

func (i *ItemUse) ItemSpan() Span   { return i.Span }
func (i *ItemMod) ItemSpan() Span   { return i.Span }
func (i *ItemOther) ItemSpan() Span { return i.Span }

// UseTree is a node of a use declaration's tree.
type UseTree interface {
	useTree()
}

// UsePath is `ident::tree`.
type UsePath struct {
	Ident string
	Tree  UseTree
}

// UseName is a terminal `ident`.
type UseName struct {
	Ident string
}

// UseRename is `ident as rename`.
type UseRename struct {
	Ident  string
	Rename string
}

// UseGlob is `*`.
type UseGlob struct{}

// UseGroup is `{tree, tree, ...}`.
type UseGroup struct {
	Items []UseTree
}

func (*UsePath) useTree()   {}
func (*UseName) useTree()   {}
func (*UseRename) useTree() {}
func (*UseGlob) useTree()   {}
func (*UseGroup) useTree()  {}
