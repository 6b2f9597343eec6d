package diagfmt

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"hirexpand/internal/diag"
	"hirexpand/internal/source"
)

func TestBuildDiagnosticsOutput(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte("macro_rules! m {}\nm!()\n\tlet x = \"open"))
	at := func(start, end uint32) source.Span { return source.Span{File: id, Start: start, End: end} }

	bag := diag.NewBag(2)
	bag.Add(diag.New(diag.SevInfo, diag.ExpUserMacroUnsupported, at(18, 19), "left unexpanded").
		WithNote(at(13, 14), "defined here"))
	bag.Add(diag.NewError(diag.LexUnterminatedString, at(32, 37), "unterminated string literal"))
	bag.Add(diag.NewError(diag.LexUnknownChar, at(0, 1), "dropped"))

	located := func(start, end uint32, l1, c1, l2, c2 uint32) LocationJSON {
		return LocationJSON{File: "test.rs", StartByte: start, EndByte: end, StartLine: l1, StartCol: c1, EndLine: l2, EndCol: c2}
	}
	info := DiagnosticJSON{Severity: "INFO", Code: "EXP3003", Message: "left unexpanded", Location: located(18, 19, 2, 1, 2, 2)}
	unterminated := DiagnosticJSON{Severity: "ERROR", Code: "LEX1002", Message: "unterminated string literal", Location: located(32, 37, 3, 10, 3, 15)}

	tests := []struct {
		name string
		opts JSONOpts
		want DiagnosticsOutput
	}{
		{
			name: "positions and notes",
			opts: JSONOpts{IncludePositions: true, IncludeNotes: true},
			want: DiagnosticsOutput{Count: 2, Hidden: 1, Diagnostics: []DiagnosticJSON{
				func() DiagnosticJSON {
					d := info
					d.Notes = []NoteJSON{{Message: "defined here", Location: located(13, 14, 1, 14, 1, 15)}}
					return d
				}(),
				unterminated,
			}},
		},
		{
			name: "bytes only",
			want: DiagnosticsOutput{Count: 2, Hidden: 1, Diagnostics: []DiagnosticJSON{
				{Severity: "INFO", Code: "EXP3003", Message: "left unexpanded", Location: LocationJSON{File: "test.rs", StartByte: 18, EndByte: 19}},
				{Severity: "ERROR", Code: "LEX1002", Message: "unterminated string literal", Location: LocationJSON{File: "test.rs", StartByte: 32, EndByte: 37}},
			}},
		},
		{
			// Max режет вывод: скрытые считаются вместе с отброшенными лимитом
			name: "max",
			opts: JSONOpts{IncludePositions: true, Max: 1},
			want: DiagnosticsOutput{Count: 1, Hidden: 2, Diagnostics: []DiagnosticJSON{info}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.opts.PathMode = PathModeBasename
			if diff := cmp.Diff(tc.want, BuildDiagnosticsOutput(bag, fs, tc.opts)); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if bag.Len() != 2 {
		t.Errorf("output must not touch the bag, len=%d", bag.Len())
	}
}

func TestDiagnosticsOutputEncoding(t *testing.T) {
	var buf bytes.Buffer
	if err := encode(&buf, BuildDiagnosticsOutput(diag.NewBag(1), source.NewFileSet(), JSONOpts{})); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte(`"diagnostics": []`)) || bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Fatalf("unexpected document:\n%s", got)
	}
	if out := BuildDiagnosticsOutput(nil, nil, JSONOpts{}); out.Diagnostics == nil || out.Count != 0 {
		t.Fatalf("nil bag: %+v", out)
	}
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{
		"":         PathModeAuto,
		"auto":     PathModeAuto,
		"absolute": PathModeAbsolute,
		"relative": PathModeRelative,
		"basename": PathModeBasename,
	} {
		got, ok := ParsePathMode(in)
		if !ok || got != want {
			t.Errorf("ParsePathMode(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParsePathMode("full"); ok {
		t.Errorf("unexpected success for unknown mode")
	}
}
