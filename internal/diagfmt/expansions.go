package diagfmt

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"hirexpand/internal/driver"
	"hirexpand/internal/hir"
	"hirexpand/internal/observ"
)

// ExpansionJSON describes one macro call and its outcome.
type ExpansionJSON struct {
	Macro    string       `json:"macro" yaml:"macro"`
	Kind     string       `json:"kind" yaml:"kind"`
	Location LocationJSON `json:"location" yaml:"location"`
	Output   string       `json:"output,omitempty" yaml:"output,omitempty"`
	Error    string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// FileJSON: результат раскрытия одного файла
type FileJSON struct {
	Path        string           `json:"path" yaml:"path"`
	Cached      bool             `json:"cached,omitempty" yaml:"cached,omitempty"`
	Expansions  []ExpansionJSON  `json:"expansions" yaml:"expansions"`
	Diagnostics []DiagnosticJSON `json:"diagnostics" yaml:"diagnostics"`
	Hidden      int              `json:"hidden_diagnostics,omitempty" yaml:"hidden_diagnostics,omitempty"`
	Timing      *observ.Report   `json:"timing,omitempty" yaml:"timing,omitempty"`
}

// ExpandOutput is the root of the document produced by `expand --format json|yaml`.
type ExpandOutput struct {
	Files      []FileJSON `json:"files" yaml:"files"`
	Expansions int        `json:"expansions" yaml:"expansions"`
	HasErrors  bool       `json:"has_errors" yaml:"has_errors"`
}

// KindLabel names what a call resolved to: the builtin's name,
// "macro_rules" or "unresolved".
func KindLabel(e *driver.Expansion) string {
	if !e.Resolved {
		return "unresolved"
	}
	if b, ok := e.Kind.IsBuiltin(); ok {
		return b.String()
	}
	if e.Kind.Tag == hir.DefUserDefined {
		return "macro_rules"
	}
	return "unknown"
}

// BuildExpandOutput формирует JSON-структуру результата без сериализации.
func BuildExpandOutput(res *driver.Result, opts JSONOpts) ExpandOutput {
	out := ExpandOutput{
		Files:      make([]FileJSON, 0, len(res.Files)),
		Expansions: res.Expansions(),
		HasErrors:  res.HasErrors(),
	}
	for i := range res.Files {
		f := &res.Files[i]
		diags := BuildDiagnosticsOutput(f.Bag, res.FileSet, opts)
		fj := FileJSON{
			Path:        f.Path,
			Cached:      f.Cached,
			Expansions:  make([]ExpansionJSON, 0, len(f.Expansions)),
			Diagnostics: diags.Diagnostics,
			Hidden:      diags.Hidden,
		}
		if opts.IncludeTimings {
			fj.Timing = f.Timing
		}
		for j := range f.Expansions {
			e := &f.Expansions[j]
			ej := ExpansionJSON{
				Macro:    e.Path,
				Kind:     KindLabel(e),
				Location: makeLocation(e.Span, res.FileSet, opts.PathMode, opts.IncludePositions),
				Output:   e.Output,
			}
			if e.Err != nil {
				ej.Error = e.Err.Error()
			}
			fj.Expansions = append(fj.Expansions, ej)
		}
		out.Files = append(out.Files, fj)
	}
	return out
}

// ExpansionsJSON writes the whole result as indented JSON.
func ExpansionsJSON(w io.Writer, res *driver.Result, opts JSONOpts) error {
	return encode(w, BuildExpandOutput(res, opts))
}

// ExpansionsYAML writes the same document as ExpansionsJSON in YAML.
func ExpansionsYAML(w io.Writer, res *driver.Result, opts JSONOpts) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(BuildExpandOutput(res, opts)); err != nil {
		return err
	}
	return enc.Close()
}

// ExpansionsPretty prints one line per call followed by the file's
// diagnostics:
//
//	main.rs:3:13: line! => 3
func ExpansionsPretty(w io.Writer, res *driver.Result, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i := range res.Files {
		f := &res.Files[i]
		for j := range f.Expansions {
			e := &f.Expansions[j]
			loc := location(res.FileSet, e.Span, opts.PathMode)
			name := pal.code.Sprint(e.Path + "!")
			switch {
			case e.Expanded():
				fmt.Fprintf(w, "%s: %s => %s\n", loc, name, e.Output)
			case e.Err != nil:
				fmt.Fprintf(w, "%s: %s %s\n", loc, name, pal.err.Sprint("failed"))
			default:
				fmt.Fprintf(w, "%s: %s (%s)\n", loc, name, KindLabel(e))
			}
		}
		Pretty(w, f.Bag, res.FileSet, opts)
	}
}
