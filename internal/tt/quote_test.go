package tt_test

import (
	"testing"

	"hirexpand/internal/tt"
)

func TestQuoteString(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", `""`},
		{"hello", `"hello"`},
		{`a"b`, `"a\"b"`},
		{`back\slash`, `"back\\slash"`},
		{"two\nlines\ttab\r", `"two\nlines\ttab\r"`},
		{"nul\x00", `"nul\0"`},
		{"bell\x07", `"bell\u{7}"`},
		{"привет", `"привет"`},
		{"a \xff b", `"a \xff b"`},
		{"\xd0 half", `"\xd0 half"`},
		{" 1 + 2 /* note */ ", `" 1 + 2 /* note */ "`},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			tree := tt.QuoteString(tc.value)
			if tree.Delimiter != tt.DelimNone || tree.Len() != 1 {
				t.Fatalf("expected one leaf in an invisible group, got %#v", tree)
			}
			lit, ok := tree.TokenTrees[0].(tt.Literal)
			if !ok {
				t.Fatalf("expected Literal, got %T", tree.TokenTrees[0])
			}
			if lit.Text != tc.want {
				t.Errorf("literal text = %s, want %s", lit.Text, tc.want)
			}
			back, ok := lit.StringValue()
			if !ok || back != tc.value {
				t.Errorf("StringValue() = %q, %v; want %q", back, ok, tc.value)
			}
		})
	}
}

func TestQuoteInt(t *testing.T) {
	for _, n := range []uint64{0, 1, 42, 1 << 40} {
		tree := tt.QuoteInt(n)
		lit, ok := tree.TokenTrees[0].(tt.Literal)
		if !ok {
			t.Fatalf("expected Literal, got %T", tree.TokenTrees[0])
		}
		got, ok := lit.IntValue()
		if !ok || got != n {
			t.Errorf("IntValue() = %d, %v; want %d", got, ok, n)
		}
	}
	if got := tt.QuoteInt(7).String(); got != "7" {
		t.Errorf("String() = %q, want 7", got)
	}
}

func TestUnescapeString(t *testing.T) {
	tests := []struct {
		lit  string
		want string
		ok   bool
	}{
		{`"plain"`, "plain", true},
		{`"\x41\u{1F600}"`, "A\U0001F600", true},
		{`"it\'s"`, "it's", true},
		{"\"a\\\n    b\"", "ab", true},
		{`"\q"`, "", false},
		{`"\x80"`, "\x80", true},
		{`"\xg0"`, "", false},
		{`"\u{}"`, "", false},
		{`r"raw"`, "", false},
		{`"unterminated`, "", false},
		{`"`, "", false},
	}
	for _, tc := range tests {
		t.Run(tc.lit, func(t *testing.T) {
			got, ok := tt.UnescapeString(tc.lit)
			if ok != tc.ok || got != tc.want {
				t.Errorf("UnescapeString(%s) = %q, %v; want %q, %v", tc.lit, got, ok, tc.want, tc.ok)
			}
		})
	}
}
