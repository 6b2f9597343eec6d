package fuzztests

import (
	"os"
	"path/filepath"
	"testing"

	"hirexpand/internal/builtin"
)

// handwritten cases that the generated grid does not reach
var extraSeeds = []string{
	"std::line![]",
	"macro_rules! m { ($e:expr) => { $e } }\nm!(1)",
	"if a != b { line!() }",
	"let s = \"line!()\"; // stringify!(x)\n",
	"/* line!() */ r#line!()",
	"",
}

// каждый встроенный макрос со всеми видами скобок и парой аргументов
var (
	seedDelims = [][2]string{{"(", ")"}, {"[", "]"}, {"{", "}"}}
	seedArgs   = []string{"", "a + b", "x (y [z])", "\"s\\n\""}
)

func addCorpusSeeds(f *testing.F) {
	for _, name := range builtin.Names() {
		for _, d := range seedDelims {
			for _, arg := range seedArgs {
				f.Add([]byte(name + "!" + d[0] + arg + d[1]))
			}
		}
	}
	for _, s := range extraSeeds {
		f.Add([]byte(s))
	}
	files, err := filepath.Glob(filepath.Join("..", "..", "testdata", "expand", "*.rs"))
	if err != nil {
		return
	}
	for _, path := range files {
		// #nosec G304 -- path comes from the repository testdata glob
		if src, readErr := os.ReadFile(path); readErr == nil {
			f.Add(clampInput(src))
		}
	}
}
