package tt_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"hirexpand/internal/lexer"
	"hirexpand/internal/source"
	"hirexpand/internal/token"
	"hirexpand/internal/tt"
)

func lex(t *testing.T, input string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("tt.rs", []byte(input))
	return lexer.New(fs.Get(id), lexer.Options{}).All()
}

func TestFromTokensNesting(t *testing.T) {
	got, err := tt.FromTokens(lex(t, "foo!(a, [1 + 2] { x })"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := tt.Subtree{TokenTrees: []tt.TokenTree{
		tt.Ident{Text: "foo"},
		tt.Punct{Char: '!', Spacing: tt.Alone},
		tt.Subtree{Delimiter: tt.DelimParen, TokenTrees: []tt.TokenTree{
			tt.Ident{Text: "a"},
			tt.Punct{Char: ',', Spacing: tt.Alone},
			tt.Subtree{Delimiter: tt.DelimBracket, TokenTrees: []tt.TokenTree{
				tt.Literal{Text: "1"},
				tt.Punct{Char: '+', Spacing: tt.Alone},
				tt.Literal{Text: "2"},
			}},
			tt.Subtree{Delimiter: tt.DelimBrace, TokenTrees: []tt.TokenTree{
				tt.Ident{Text: "x"},
			}},
		}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
	if got.Leaves() != 8 {
		t.Errorf("Leaves() = %d, want 8", got.Leaves())
	}
}

func TestFromTokensJointPunct(t *testing.T) {
	got, err := tt.FromTokens(lex(t, "a::b => c"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []tt.TokenTree{
		tt.Ident{Text: "a"},
		tt.Punct{Char: ':', Spacing: tt.Joint},
		tt.Punct{Char: ':', Spacing: tt.Alone},
		tt.Ident{Text: "b"},
		tt.Punct{Char: '=', Spacing: tt.Joint},
		tt.Punct{Char: '>', Spacing: tt.Alone},
		tt.Ident{Text: "c"},
	}
	if diff := cmp.Diff(want, got.TokenTrees); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
	// пробел разрывает склейку
	spaced, err := tt.FromTokens(lex(t, "= >"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p, ok := spaced.TokenTrees[0].(tt.Punct); !ok || p.Spacing != tt.Alone {
		t.Errorf("expected Alone punct, got %#v", spaced.TokenTrees[0])
	}
}

func TestFromTokensDelimErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  tt.DelimErrorKind
		text  string
	}{
		{"(a", tt.Unclosed, "("},
		{"{ [ }", tt.Unbalanced, "}"},
		{")", tt.Unbalanced, ")"},
		{"x ( [ ] ", tt.Unclosed, "("},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			_, err := tt.FromTokens(lex(t, tc.input))
			var de *tt.DelimError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DelimError, got %v", err)
			}
			if de.Kind != tc.kind || de.Text != tc.text {
				t.Errorf("got kind=%d text=%q, want kind=%d text=%q", de.Kind, de.Text, tc.kind, tc.text)
			}
		})
	}
}

func TestGroupFromTokens(t *testing.T) {
	group, err := tt.GroupFromTokens(lex(t, "(1, 2)"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if group.Delimiter != tt.DelimParen || group.Len() != 3 {
		t.Errorf("unexpected group %v", group)
	}
	if _, err := tt.GroupFromTokens(lex(t, "a b")); err == nil {
		t.Error("expected error for non-group input")
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a::b", "a:: b"},
		{"foo!( a,b )", "foo ! (a , b)"},
		{"x  +=  1", "x += 1"},
		{"{ [ ] }", "{[]}"},
		{`"s" 'c' 1.5f32`, `"s" 'c' 1.5f32`},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			tree, err := tt.FromTokens(lex(t, tc.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := tree.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRenderReparses(t *testing.T) {
	inputs := []string{
		"fn main() { let x = a::b(1, 2); }",
		"foo![x => y, ..]",
		"a && !b || c",
	}
	for _, input := range inputs {
		first, err := tt.FromTokens(lex(t, input))
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		second, err := tt.FromTokens(lex(t, first.String()))
		if err != nil {
			t.Fatalf("%q reparse: %v", input, err)
		}
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("%q: reparse mismatch (-first +second):\n%s", input, diff)
		}
	}
}
