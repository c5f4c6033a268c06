package syntax

import "strings"

// FormatUseTree renders a use tree as Rust source.
func FormatUseTree(tree UseTree) string {
	var sb strings.Builder
	writeUseTree(&sb, tree)
	return sb.String()
}

func writeUseTree(sb *strings.Builder, tree UseTree) {
	switch t := tree.(type) {
	case *UsePath:
		sb.WriteString(t.Ident)
		sb.WriteString("::")
		writeUseTree(sb, t.Tree)
	case *UseName:
		sb.WriteString(t.Ident)
	case *UseRename:
		sb.WriteString(t.Ident)
		sb.WriteString(" as ")
		sb.WriteString(t.Rename)
	case *UseGlob:
		sb.WriteByte('*')
	case *UseGroup:
		sb.WriteByte('{')
		for i, item := range t.Items {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeUseTree(sb, item)
		}
		sb.WriteByte('}')
	}
}

// FormatUse renders the use declaration u with its tree replaced by tree.
// Attributes are placed on their own lines so that line doc comments stay
// terminated.
func FormatUse(u *ItemUse, tree UseTree) string {
	var sb strings.Builder
	for _, attr := range u.Attrs {
		sb.WriteString(attr)
		sb.WriteByte('\n')
	}
	if u.Vis != "" {
		sb.WriteString(u.Vis)
		sb.WriteByte(' ')
	}
	sb.WriteString("use ")
	if u.LeadingColon {
		sb.WriteString("::")
	}
	writeUseTree(&sb, tree)
	sb.WriteByte(';')
	return sb.String()
}
