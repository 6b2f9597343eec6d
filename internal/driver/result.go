package driver

import (
	"hirexpand/internal/db"
	"hirexpand/internal/diag"
	"hirexpand/internal/hir"
	"hirexpand/internal/observ"
	"hirexpand/internal/source"
)

// Expansion is the outcome of one macro call.
type Expansion struct {
	Call  hir.MacroCallID
	Index uint32 // индекс узла в файле
	Path  string // путь макроса как записан: std::line
	// Resolved is false for calls to macros that are neither builtin nor
	// defined with macro_rules! earlier in the file; Kind is then zero.
	Resolved bool
	Kind     hir.MacroDefKind
	Span     source.Span
	// Output is the rendered expansion; empty when Err is set or the macro
	// is not builtin.
	Output string
	Err    error
}

// Expanded reports whether the call produced output.
func (e Expansion) Expanded() bool {
	_, builtin := e.Kind.IsBuiltin()
	return e.Resolved && builtin && e.Err == nil
}

// FileResult holds everything produced for one file.
type FileResult struct {
	Path       string
	FileID     source.FileID
	Expansions []Expansion
	Bag        *diag.Bag
	Timing     *observ.Report
	Cached     bool
}

// Result is the outcome of one run.
type Result struct {
	FileSet *source.FileSet
	Store   *db.Store
	Files   []FileResult
}

// HasErrors reports whether any file has error diagnostics.
func (r *Result) HasErrors() bool {
	for _, f := range r.Files {
		if f.Bag != nil && f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Expansions counts successful expansions over all files.
func (r *Result) Expansions() int {
	n := 0
	for _, f := range r.Files {
		for _, e := range f.Expansions {
			if e.Expanded() {
				n++
			}
		}
	}
	return n
}
