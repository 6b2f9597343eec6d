package testkit

import (
	"testing"

	"hirexpand/internal/source"
	"hirexpand/internal/syntax"
)

func TestCheckSpanInvariants(t *testing.T) {
	inputs := []string{
		"",
		"line!()",
		"let a = file![]; let b = stringify!{ x (y) };",
		"macro_rules! m { () => {} }\nm!(1)",
		"broken!( a",
		"x!",
		"macro_rules! half",
	}
	for _, input := range inputs {
		fs := source.NewFileSet()
		id := fs.AddVirtual("inv.rs", []byte(input))
		sf := fs.Get(id)
		f := syntax.ParseFile(sf, syntax.Options{})
		if err := CheckSpanInvariants(f, sf); err != nil {
			t.Errorf("%q: %v", input, err)
		}
	}
}

func TestCheckSpanInvariants_Mismatch(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.AddVirtual("a.rs", []byte("line!()"))
	b := fs.AddVirtual("b.rs", []byte("line!()"))
	f := syntax.ParseFile(fs.Get(a), syntax.Options{})
	if err := CheckSpanInvariants(f, fs.Get(b)); err == nil {
		t.Fatal("expected file id mismatch")
	}
	if err := CheckSpanInvariants(nil, fs.Get(a)); err == nil {
		t.Fatal("expected error for nil file")
	}
}
