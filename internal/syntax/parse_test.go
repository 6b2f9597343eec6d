package syntax_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"hirexpand/internal/diag"
	"hirexpand/internal/source"
	"hirexpand/internal/syntax"
	"hirexpand/internal/tt"
)

func parse(t *testing.T, input string) (*syntax.File, *diag.Bag, []byte) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("syntax.rs", []byte(input))
	bag := diag.NewBag(100)
	f := syntax.ParseFile(fs.Get(id), syntax.Options{Reporter: &diag.BagReporter{Bag: bag}})
	return f, bag, fs.Get(id).Content
}

func TestParseCallShapes(t *testing.T) {
	tests := []struct {
		input string
		path  string
		delim tt.DelimiterKind
		group string
	}{
		{"line!()", "line", tt.DelimParen, "()"},
		{"x = file![];", "file", tt.DelimBracket, "[]"},
		{"stringify!{ a b }", "stringify", tt.DelimBrace, "{ a b }"},
		{"std::line!( 1 )", "std::line", tt.DelimParen, "( 1 )"},
		{"::core::stringify!(x)", "core::stringify", tt.DelimParen, "(x)"},
		{"r#line!(q)", "r#line", tt.DelimParen, "(q)"},
		{"foo !(a)", "foo", tt.DelimParen, "(a)"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			f, bag, text := parse(t, tc.input)
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %v", bag.Items())
			}
			calls := f.Calls()
			if len(calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(calls))
			}
			call := calls[0]
			if call.PathText() != tc.path {
				t.Errorf("path = %q, want %q", call.PathText(), tc.path)
			}
			tree, ok := call.TokenTree()
			if !ok {
				t.Fatal("expected token tree")
			}
			if tree.Delimiter != tc.delim {
				t.Errorf("delimiter = %s, want %s", tree.Delimiter, tc.delim)
			}
			if got := string(tree.TextRange().Slice(text)); got != tc.group {
				t.Errorf("group text = %q, want %q", got, tc.group)
			}
		})
	}
}

func TestParseCallName(t *testing.T) {
	f, _, _ := parse(t, "r#line!() std::file!()")
	var names []string
	for _, c := range f.Calls() {
		names = append(names, c.Name())
	}
	if diff := cmp.Diff([]string{"line", "file"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNotCalls(t *testing.T) {
	inputs := []string{
		"if !x { y }",
		"while !(done) {}",
		"a != b",
		"return !ok;",
		"#![allow(dead_code)]",
		"let s = \"line!()\"; // file!()",
	}
	for _, input := range inputs {
		f, _, _ := parse(t, input)
		if n := len(f.Calls()); n != 0 {
			t.Errorf("%q: expected no calls, got %d", input, n)
		}
	}
}

func TestParseMissingArgs(t *testing.T) {
	f, bag, _ := parse(t, "let x = line!;")
	calls := f.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if _, ok := calls[0].TokenTree(); ok {
		t.Error("expected call without token tree")
	}
	if bag.Len() != 0 {
		t.Errorf("missing arguments are reported by the expander, got %v", bag.Items())
	}
}

func TestParseNestedCallsNotScanned(t *testing.T) {
	f, _, _ := parse(t, "stringify!(line!()) file!()")
	calls := f.Calls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	if calls[0].Name() != "stringify" || calls[1].Name() != "file" {
		t.Errorf("unexpected calls %q, %q", calls[0].Name(), calls[1].Name())
	}
	if calls[0].Index() != 0 || calls[1].Index() != 1 {
		t.Errorf("unexpected indices %d, %d", calls[0].Index(), calls[1].Index())
	}
}

func TestParseMacroRules(t *testing.T) {
	f, bag, _ := parse(t, "macro_rules! square { ($x:expr) => { $x * $x }; }\nsquare!(3)")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	rules := f.Rules()
	if len(rules) != 1 || rules[0].Name != "square" || rules[0].Body == nil {
		t.Fatalf("unexpected rules %+v", rules)
	}
	calls := f.Calls()
	if len(calls) != 1 || calls[0].Index() != 1 {
		t.Fatalf("expected call with index 1, got %+v", calls)
	}
	node, ok := f.Node(1)
	if !ok || node != calls[0] {
		t.Error("Node(1) should return the call")
	}
	if _, ok := f.Node(2); ok {
		t.Error("Node(2) should not exist")
	}
}

func TestParseDelimiterErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{"line!(", diag.SynUnclosedDelimiter},
		{"a ) b", diag.SynUnbalancedDelimiter},
		{"foo!( ] )", diag.SynUnbalancedDelimiter},
		{"macro_rules! ;", diag.SynUnexpectedToken},
		{"macro_rules! m ;", diag.SynUnexpectedToken},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			_, bag, _ := parse(t, tc.input)
			items := bag.Items()
			if len(items) == 0 {
				t.Fatal("expected a diagnostic")
			}
			if items[0].Code != tc.code {
				t.Errorf("code = %s, want %s", items[0].Code.ID(), tc.code.ID())
			}
		})
	}
}

func TestParseUnclosedCallHasNoTree(t *testing.T) {
	f, _, _ := parse(t, "line!(")
	calls := f.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if _, ok := calls[0].TokenTree(); ok {
		t.Error("unclosed group must not become a token tree")
	}
}

func TestParseMaxErrors(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("many.rs", []byte(") ) ) )"))
	bag := diag.NewBag(100)
	syntax.ParseFile(fs.Get(id), syntax.Options{MaxErrors: 2, Reporter: &diag.BagReporter{Bag: bag}})
	if bag.Len() != 2 {
		t.Errorf("expected 2 diagnostics, got %d", bag.Len())
	}
}

func TestTextRange(t *testing.T) {
	r := syntax.NewTextRange(2, 5)
	if r.Start() != 2 || r.End() != 5 || r.Len() != 3 {
		t.Errorf("unexpected range %s", r)
	}
	if !r.Contains(2) || r.Contains(5) {
		t.Error("Contains is half-open")
	}
	if got := string(syntax.NewTextRange(3, 10).Slice([]byte("abcdef"))); got != "def" {
		t.Errorf("clamped slice = %q, want def", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for inverted range")
		}
	}()
	syntax.NewTextRange(5, 2)
}
