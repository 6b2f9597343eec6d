package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"hirexpand/internal/diag"
	"hirexpand/internal/source"
)

func TestPrettyExcerpt(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("fn main() {\n    let l = line!;\n}\n")
	fileID := fs.AddVirtual("main.rs", content)

	bag := diag.NewBag(4)
	// `line!` занимает байты 24..29
	bag.Add(diag.NewError(diag.ExpUnexpectedToken, source.Span{File: fileID, Start: 24, End: 29}, "expects an argument group"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})

	want := strings.Join([]string{
		"main.rs:2:13: ERROR EXP3001: expects an argument group",
		" 1 | fn main() {",
		" 2 |     let l = line!;",
		"   | " + strings.Repeat(" ", 12) + "^~~~~",
		" 3 | }",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyTabsAndWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("\t\"日本\" x")
	fileID := fs.AddVirtual("wide.rs", content)

	bag := diag.NewBag(4)
	// x стоит после двух широких символов
	start := uint32(len("\t\"日本\" "))
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: start, End: start + 1}, "bad"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})

	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	// табуляция = 4 колонки, кавычки по 1, иероглифы по 2, пробел 1
	want := " |" + " " + strings.Repeat(" ", 4+1+4+1+1) + "^"
	if !strings.HasSuffix(lines[2], want) {
		t.Fatalf("caret misplaced: %q, want suffix %q", lines[2], want)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("macro_rules! line { () => {} }\nline!()\n")
	fileID := fs.AddVirtual("test.rs", content)

	bag := diag.NewBag(4)
	d := diag.New(diag.SevInfo, diag.ExpUserMacroUnsupported, source.Span{File: fileID, Start: 31, End: 35}, "left unexpanded")
	d = d.WithNote(source.Span{File: fileID, Start: 13, End: 17}, "defined here")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes must be hidden without ShowNotes:\n%s", buf.String())
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	output := buf.String()
	if !strings.Contains(output, "note: test.rs:1:14: defined here") {
		t.Fatalf("expected note with location, got:\n%s", output)
	}
	if !strings.Contains(output, "INFO EXP3003") {
		t.Fatalf("expected severity and code, got:\n%s", output)
	}
}

func TestPrettyUnknownFile(t *testing.T) {
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: 7}, "failed to load file"))

	var buf bytes.Buffer
	Pretty(&buf, bag, source.NewFileSet(), PrettyOpts{})
	if got, want := buf.String(), "<unknown>: ERROR IO4001: failed to load file\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.rs", []byte("x"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "bad"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})

	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output has escape codes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escape codes: %q", colored.String())
	}
}

func TestPrettyMinSeverity(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("q.rs", []byte("foo!()\nline!\n"))
	bag := diag.NewBag(4)
	bag.Add(diag.New(diag.SevInfo, diag.ExpUnresolvedMacro, source.Span{File: fileID, Start: 0, End: 3}, "cannot find macro"))
	bag.Add(diag.NewError(diag.ExpUnexpectedToken, source.Span{File: fileID, Start: 7, End: 12}, "expects an argument group"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{MinSeverity: diag.SevWarning})
	output := buf.String()
	if strings.Contains(output, "EXP3002") || !strings.Contains(output, "EXP3001") {
		t.Fatalf("unexpected output:\n%s", output)
	}
}

func TestPrettyReportsDropped(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("d.rs", []byte("€€€"))
	bag := diag.NewBag(1)
	for i := range uint32(3) {
		bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 3 * i, End: 3*i + 3}, "unknown character"))
	}

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if last := lines[len(lines)-1]; last != "... 2 more diagnostics not shown (limit 1 reached)" {
		t.Fatalf("last line = %q\n%s", last, buf.String())
	}
	if strings.Count(buf.String(), "LEX1001") != 1 {
		t.Fatalf("only the first diagnostic is listed:\n%s", buf.String())
	}
}
