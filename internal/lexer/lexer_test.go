package lexer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"hirexpand/internal/diag"
	"hirexpand/internal/lexer"
	"hirexpand/internal/source"
	"hirexpand/internal/token"
)

// lexString лексит input и возвращает токены вместе с собранными диагностиками.
func lexString(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	bag := diag.NewBag(0)
	lx := lexer.New(fs.Get(fs.AddVirtual("test.rs", []byte(input))), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	return lx, bag
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind != token.EOF {
			out = append(out, tok.Kind)
		}
	}
	return out
}

func expectTokens(t *testing.T, input string, want []token.Kind) {
	t.Helper()
	lx, bag := lexString(input)
	if diff := cmp.Diff(want, kinds(lx.All())); diff != "" {
		t.Fatalf("%q: kinds mismatch (-want +got):\n%s\ndiagnostics: %v", input, diff, bag.Items())
	}
}

func expectSingleToken(t *testing.T, input string, kind token.Kind, text string) {
	t.Helper()
	lx, bag := lexString(input)
	if tok := lx.Next(); tok.Kind != kind || tok.Text != text {
		t.Errorf("%q: got %v(%q), want %v(%q); diagnostics: %v", input, tok.Kind, tok.Text, kind, text, bag.Items())
	}
}

// ====== Идентификаторы ======

func TestIdentifiers(t *testing.T) {
	tests := []string{"foo", "_bar", "stringify", "macro_rules", "r#match", "привет", "x1"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expectSingleToken(t, input, token.Ident, input)
		})
	}
}

// ====== Числа ======

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		text  string
	}{
		{"0", token.IntLit, "0"},
		{"1_000", token.IntLit, "1_000"},
		{"0xFF", token.IntLit, "0xFF"},
		{"0b1010", token.IntLit, "0b1010"},
		{"0o17", token.IntLit, "0o17"},
		{"3u32", token.IntLit, "3u32"},
		{"1.5", token.FloatLit, "1.5"},
		{"2.5e-3", token.FloatLit, "2.5e-3"},
		{"1e10", token.FloatLit, "1e10"},
		{"7f64", token.IntLit, "7f64"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.text)
		})
	}
}

func TestNumbers_RangeAndMethod(t *testing.T) {
	expectTokens(t, "1..2", []token.Kind{token.IntLit, token.Punct, token.Punct, token.IntLit})
	expectTokens(t, "1.max(2)", []token.Kind{
		token.IntLit, token.Punct, token.Ident, token.LParen, token.IntLit, token.RParen,
	})
}

func TestNumbers_InvalidExponent(t *testing.T) {
	lx, bag := lexString("1.0e+")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Errorf("Expected Invalid, got %v", tok.Kind)
	}
	if !bag.HasErrors() {
		t.Error("Expected error report for bad exponent")
	}
}

// ====== Строки и символы ======

func TestStrings(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		text  string
	}{
		{`""`, token.StringLit, `""`},
		{`"hello world"`, token.StringLit, `"hello world"`},
		{`"quote\"inside"`, token.StringLit, `"quote\"inside"`},
		{`"backslash\\"`, token.StringLit, `"backslash\\"`},
		{"\"multi\nline\"", token.StringLit, "\"multi\nline\""},
		{`r"raw \n"`, token.RawStringLit, `r"raw \n"`},
		{`r#"has "quotes""#`, token.RawStringLit, `r#"has "quotes""#`},
		{`b"bytes"`, token.ByteStringLit, `b"bytes"`},
		{`br"raw bytes"`, token.ByteStringLit, `br"raw bytes"`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.text)
		})
	}
}

func TestString_Unterminated(t *testing.T) {
	for _, input := range []string{`"hello`, `r#"never"`, `b"x`} {
		t.Run(input, func(t *testing.T) {
			lx, bag := lexString(input)
			tok := lx.Next()
			if tok.Kind != token.Invalid {
				t.Errorf("Expected Invalid for unterminated string, got %v", tok.Kind)
			}
			if !bag.HasErrors() {
				t.Error("Expected error report for unterminated string")
			}
		})
	}
}

func TestCharsAndLifetimes(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		text  string
	}{
		{`'a'`, token.CharLit, `'a'`},
		{`'\n'`, token.CharLit, `'\n'`},
		{`'\''`, token.CharLit, `'\''`},
		{`'\u{1F600}'`, token.CharLit, `'\u{1F600}'`},
		{`'é'`, token.CharLit, `'é'`},
		{`b'x'`, token.ByteLit, `b'x'`},
		{`'a`, token.Lifetime, `'a`},
		{`'static`, token.Lifetime, `'static`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.text)
		})
	}
}

// ====== Пунктуация ======

func TestPunctuation(t *testing.T) {
	expectTokens(t, "a::b => c!", []token.Kind{
		token.Ident, token.Punct, token.Punct, token.Ident,
		token.Punct, token.Punct, token.Ident, token.Punct,
	})
	expectTokens(t, "([{}])", []token.Kind{
		token.LParen, token.LBracket, token.LBrace, token.RBrace, token.RBracket, token.RParen,
	})
}

func TestUnknownCharacter(t *testing.T) {
	lx, bag := lexString("€")
	tok := lx.Next()
	if tok.Kind != token.Invalid || tok.Text != "€" {
		t.Errorf("Expected Invalid(€), got %v(%q)", tok.Kind, tok.Text)
	}
	if !bag.HasErrors() {
		t.Error("Expected error report for unknown character")
	}
}

// ====== Trivia ======

func TestTrivia_BlockComment(t *testing.T) {
	lx, _ := lexString("/* outer /* nested */ */foo")
	tok := lx.Next()

	if tok.Kind != token.Ident {
		t.Fatalf("Expected Ident, got %v", tok.Kind)
	}
	if len(tok.Leading) != 1 || tok.Leading[0].Kind != token.TriviaBlockComment {
		t.Fatalf("Expected one block comment trivia, got %v", tok.Leading)
	}
	if tok.Leading[0].Text != "/* outer /* nested */ */" {
		t.Errorf("unexpected comment text %q", tok.Leading[0].Text)
	}
}

func TestTrivia_UnterminatedBlockComment(t *testing.T) {
	lx, bag := lexString("/* unterminated\nfoo")
	tok := lx.Next()
	if tok.Kind != token.EOF {
		t.Errorf("Expected EOF after unterminated block comment, got %v", tok.Kind)
	}
	if !bag.HasErrors() {
		t.Error("Expected error report for unterminated block comment")
	}
}

func TestTrivia_Kinds(t *testing.T) {
	type piece struct {
		Kind token.TriviaKind
		Text string
	}
	tests := []struct {
		name  string
		input string
		want  []piece
	}{
		{
			name:  "mixed",
			input: "\n\n\t// c1\n/* b */ /// doc\nfoo",
			want: []piece{
				{token.TriviaNewline, "\n\n"},
				{token.TriviaSpace, "\t"},
				{token.TriviaLineComment, "// c1"},
				{token.TriviaNewline, "\n"},
				{token.TriviaBlockComment, "/* b */"},
				{token.TriviaSpace, " "},
				{token.TriviaDocLine, "/// doc"},
				{token.TriviaNewline, "\n"},
			},
		},
		{
			name:  "carriage return is blank",
			input: " \r\t\nfoo",
			want:  []piece{{token.TriviaSpace, " \r\t"}, {token.TriviaNewline, "\n"}},
		},
		{
			name:  "slash is not trivia",
			input: "/foo",
			want:  nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lx, _ := lexString(tc.input)
			var got []piece
			for _, tr := range lx.Next().Leading {
				got = append(got, piece{tr.Kind, tr.Text})
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("trivia mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Trivia внутри группы аргументов лежат ровно между её токенами: stringify!
// берёт этот текст как есть.
func TestTrivia_InsideArgumentGroup(t *testing.T) {
	input := "stringify!( a /* x */\n b )"
	lx, _ := lexString(input)
	toks := lx.All()
	var inside []string
	for _, tok := range toks {
		if tok.Depth != 1 {
			continue
		}
		for _, tr := range tok.Leading {
			inside = append(inside, input[tr.Span.Start:tr.Span.End])
		}
	}
	if diff := cmp.Diff([]string{" ", " ", "/* x */", "\n", " "}, inside); diff != "" {
		t.Errorf("trivia in group mismatch (-want +got):\n%s", diff)
	}
	closer := toks[len(toks)-2]
	if closer.Kind != token.RParen || closer.Depth != 0 || len(closer.Leading) != 1 {
		t.Errorf("closer = %+v", closer)
	}
}

// ====== Интеграционные ======

func TestLexer_MacroCall(t *testing.T) {
	expectTokens(t, `let s = stringify!(  1 + 2 /* note */ );`, []token.Kind{
		token.Ident, token.Ident, token.Punct, token.Ident, token.Punct,
		token.LParen, token.IntLit, token.Punct, token.IntLit, token.RParen, token.Punct,
	})
}

func TestLexer_SpansMatchText(t *testing.T) {
	input := "fn main() { println!(\"α {}\", line!()); }"
	lx, _ := lexString(input)
	for _, tok := range lx.All() {
		if got := input[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Fatalf("span %v gives %q, token text %q", tok.Span, got, tok.Text)
		}
	}
}

func TestLexer_PeekBehavior(t *testing.T) {
	lx, _ := lexString("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next after Peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" || len(n.Leading) != 1 {
		t.Fatalf("Next = %q with %d trivia", n.Text, len(n.Leading))
	}
	for range 3 {
		if lx.Next().Kind != token.EOF {
			t.Fatal("EOF must be sticky")
		}
	}
}

func TestLexer_EmptyInput(t *testing.T) {
	lx, _ := lexString("   \n  ")
	if tok := lx.Next(); tok.Kind != token.EOF || len(tok.Leading) != 0 {
		t.Fatalf("Expected bare EOF, got %v with %d trivia", tok.Kind, len(tok.Leading))
	}
}
