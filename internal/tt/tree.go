package tt

// DelimiterKind describes how a Subtree is enclosed.
type DelimiterKind uint8

const (
	// DelimNone marks an invisible group (top level of an expansion).
	DelimNone DelimiterKind = iota
	DelimParen
	DelimBrace
	DelimBracket
)

// Open returns the opening delimiter text.
func (k DelimiterKind) Open() string {
	switch k {
	case DelimParen:
		return "("
	case DelimBrace:
		return "{"
	case DelimBracket:
		return "["
	default:
		return ""
	}
}

// Close returns the closing delimiter text.
func (k DelimiterKind) Close() string {
	switch k {
	case DelimParen:
		return ")"
	case DelimBrace:
		return "}"
	case DelimBracket:
		return "]"
	default:
		return ""
	}
}

func (k DelimiterKind) String() string {
	switch k {
	case DelimParen:
		return "paren"
	case DelimBrace:
		return "brace"
	case DelimBracket:
		return "bracket"
	default:
		return "none"
	}
}

// Spacing tells whether a Punct is glued to the following Punct. Rendering
// puts one space between leaves unless the left one is a Joint Punct.
type Spacing uint8

const (
	Alone Spacing = iota
	Joint
)

// TokenTree is either a leaf (Ident, Literal, Punct) or a Subtree.
type TokenTree interface {
	isTokenTree()
}

// Subtree is a delimited sequence of token trees.
type Subtree struct {
	Delimiter  DelimiterKind
	TokenTrees []TokenTree
}

// Ident is an identifier or keyword leaf.
type Ident struct {
	Text string
}

// Literal is a literal leaf; Text is the literal exactly as written,
// quotes, prefixes and suffixes included.
type Literal struct {
	Text string
}

// Punct is a single punctuation character.
type Punct struct {
	Char    byte
	Spacing Spacing
}

func (Subtree) isTokenTree() {}
func (Ident) isTokenTree()   {}
func (Literal) isTokenTree() {}
func (Punct) isTokenTree()   {}

// Len returns the number of direct children.
func (s Subtree) Len() int {
	return len(s.TokenTrees)
}

// Empty reports whether the subtree has no children.
func (s Subtree) Empty() bool {
	return len(s.TokenTrees) == 0
}

// Leaves returns the number of leaves in the whole tree.
func (s Subtree) Leaves() int {
	n := 0
	for _, child := range s.TokenTrees {
		if sub, ok := child.(Subtree); ok {
			n += sub.Leaves()
			continue
		}
		n++
	}
	return n
}
