package token_test

import (
	"testing"

	"hirexpand/internal/source"
	"hirexpand/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{
		token.IntLit, token.FloatLit, token.StringLit, token.RawStringLit,
		token.ByteStringLit, token.CharLit, token.ByteLit,
	}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.Lifetime, token.Punct, token.LParen, token.EOF}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestDelimiters(t *testing.T) {
	pairs := map[token.Kind]token.Kind{
		token.LParen:   token.RParen,
		token.LBrace:   token.RBrace,
		token.LBracket: token.RBracket,
	}
	for open, closing := range pairs {
		if !open.IsOpenDelim() || open.IsCloseDelim() {
			t.Errorf("%v must be an opening delimiter", open)
		}
		if !closing.IsCloseDelim() || closing.IsOpenDelim() {
			t.Errorf("%v must be a closing delimiter", closing)
		}
		if open.Closing() != closing {
			t.Errorf("%v.Closing() = %v, want %v", open, open.Closing(), closing)
		}
	}
	if token.Ident.Closing() != token.Invalid {
		t.Error("Ident has no closing delimiter")
	}
}

func TestIsPunct(t *testing.T) {
	bang := token.Token{Kind: token.Punct, Text: "!"}
	if !bang.IsPunct('!') {
		t.Fatal("expected '!' punct")
	}
	if bang.IsPunct('?') {
		t.Fatal("'!' is not '?'")
	}
	ident := token.Token{Kind: token.Ident, Text: "!"}
	if ident.IsPunct('!') {
		t.Fatal("identifier must not be treated as punct")
	}
}

func TestKindString(t *testing.T) {
	if token.StringLit.String() != "StringLit" {
		t.Errorf("unexpected name %q", token.StringLit.String())
	}
	if token.Kind(250).String() != "Kind(?)" {
		t.Errorf("unexpected name for unknown kind")
	}
}
