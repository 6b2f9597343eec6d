package token

import (
	"hirexpand/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
	// Depth counts the delimiter groups enclosing the token. A group's
	// opener and closer carry the depth of the tokens outside it.
	Depth int
}

// IsLiteral reports whether the token is a numeric, character or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, RawStringLit, ByteStringLit, CharLit, ByteLit:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is the punctuation character ch.
func (t Token) IsPunct(ch byte) bool {
	return t.Kind == Punct && len(t.Text) == 1 && t.Text[0] == ch
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// HasLeadingTrivia reports whether whitespace or comments precede the token.
func (t Token) HasLeadingTrivia() bool { return len(t.Leading) > 0 }
