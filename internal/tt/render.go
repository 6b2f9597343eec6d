package tt

import (
	"strings"
)

// String renders the tree as source text. Leaves are separated by one
// space, except Joint punctuation which is glued to the next Punct.
func (s Subtree) String() string {
	var b strings.Builder
	writeSubtree(&b, s)
	return b.String()
}

func writeSubtree(b *strings.Builder, s Subtree) {
	b.WriteString(s.Delimiter.Open())
	glue := true
	for _, child := range s.TokenTrees {
		if !glue {
			b.WriteByte(' ')
		}
		glue = false
		switch leaf := child.(type) {
		case Subtree:
			writeSubtree(b, leaf)
		case Ident:
			b.WriteString(leaf.Text)
		case Literal:
			b.WriteString(leaf.Text)
		case Punct:
			b.WriteByte(leaf.Char)
			glue = leaf.Spacing == Joint
		}
	}
	b.WriteString(s.Delimiter.Close())
}
