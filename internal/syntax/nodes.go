package syntax

import (
	"strings"

	"hirexpand/internal/source"
	"hirexpand/internal/token"
	"hirexpand/internal/tt"
)

// Node is a macro-related syntax node of a File.
type Node interface {
	// Index is the position of the node among all nodes of its file.
	Index() uint32
	Span() source.Span
}

// MacroCall is an invocation path!(..). Its argument group may be missing
// when the source is malformed.
type MacroCall struct {
	index    uint32
	Path     []string
	PathSpan source.Span
	Bang     source.Span
	span     source.Span
	tree     *TokenTree
}

func (c *MacroCall) Index() uint32     { return c.index }
func (c *MacroCall) Span() source.Span { return c.span }

// Name returns the last path segment with any raw-identifier prefix removed.
func (c *MacroCall) Name() string {
	if len(c.Path) == 0 {
		return ""
	}
	return strings.TrimPrefix(c.Path[len(c.Path)-1], "r#")
}

// PathText renders the call path as written, segments joined by "::".
func (c *MacroCall) PathText() string {
	return strings.Join(c.Path, "::")
}

// TokenTree returns the argument group of the call.
func (c *MacroCall) TokenTree() (*TokenTree, bool) {
	return c.tree, c.tree != nil
}

// TokenTree is the delimited argument group of a macro call, delimiters
// included.
type TokenTree struct {
	Delimiter tt.DelimiterKind
	Span      source.Span
	Tokens    []token.Token
}

// TextRange covers the group from its opening delimiter through its
// closing delimiter.
func (t *TokenTree) TextRange() TextRange {
	return NewTextRange(t.Span.Start, t.Span.End)
}

// Subtree converts the group to a token tree.
func (t *TokenTree) Subtree() (tt.Subtree, error) {
	return tt.GroupFromTokens(t.Tokens)
}

// MacroRules is a macro_rules! definition. The body is not interpreted.
type MacroRules struct {
	index    uint32
	Name     string
	NameSpan source.Span
	span     source.Span
	Body     *TokenTree
}

func (m *MacroRules) Index() uint32     { return m.index }
func (m *MacroRules) Span() source.Span { return m.span }

// File is the parsed form of one source file.
type File struct {
	ID     source.FileID
	Tokens []token.Token
	nodes  []Node
}

// Node returns the node with the given index.
func (f *File) Node(idx uint32) (Node, bool) {
	if f == nil || int(idx) >= len(f.nodes) {
		return nil, false
	}
	return f.nodes[idx], true
}

// Nodes returns all nodes in source order.
func (f *File) Nodes() []Node {
	return f.nodes
}

// Calls returns the macro calls in source order.
func (f *File) Calls() []*MacroCall {
	var out []*MacroCall
	for _, n := range f.nodes {
		if c, ok := n.(*MacroCall); ok {
			out = append(out, c)
		}
	}
	return out
}

// Rules returns the macro_rules! definitions in source order.
func (f *File) Rules() []*MacroRules {
	var out []*MacroRules
	for _, n := range f.nodes {
		if m, ok := n.(*MacroRules); ok {
			out = append(out, m)
		}
	}
	return out
}
