package db_test

import (
	"fmt"
	"sync"
	"testing"

	"hirexpand/internal/db"
	"hirexpand/internal/diag"
	"hirexpand/internal/hir"
)

func TestInternMacroCall(t *testing.T) {
	s := db.New(nil, db.Options{})
	file := hir.RealFile(s.AddFile("main.rs", []byte("line!()")))
	a := hir.MacroCallLoc{AstID: hir.AstID{File: file, Index: 0}}
	b := hir.MacroCallLoc{AstID: hir.AstID{File: file, Index: 1}}

	idA := s.InternMacroCall(a)
	if !idA.IsValid() {
		t.Fatal("interned id must be valid")
	}
	if again := s.InternMacroCall(a); again != idA {
		t.Errorf("re-interning gave %d, want %d", again, idA)
	}
	idB := s.InternMacroCall(b)
	if idB == idA {
		t.Error("distinct locations must get distinct ids")
	}
	if loc, ok := s.LookupMacroCall(idB); !ok || loc != b {
		t.Errorf("LookupMacroCall(%d) = %v, %v", idB, loc, ok)
	}
	if _, ok := s.LookupMacroCall(hir.NoMacroCallID); ok {
		t.Error("zero id must not resolve")
	}
	if _, ok := s.LookupMacroCall(99); ok {
		t.Error("unknown id must not resolve")
	}
	if s.MacroCalls() != 2 {
		t.Errorf("MacroCalls() = %d, want 2", s.MacroCalls())
	}
}

func TestInternConcurrent(t *testing.T) {
	s := db.New(nil, db.Options{})
	file := hir.RealFile(s.AddFile("main.rs", nil))
	const workers = 16
	ids := make([]hir.MacroCallID, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = s.InternMacroCall(hir.MacroCallLoc{AstID: hir.AstID{File: file, Index: 3}})
		}(i)
	}
	wg.Wait()
	for i, id := range ids {
		if id != ids[0] {
			t.Fatalf("worker %d got %d, want %d", i, id, ids[0])
		}
	}
}

func TestParseCachedPerRevision(t *testing.T) {
	s := db.New(nil, db.Options{})
	id := s.AddFile("main.rs", []byte("line!()"))
	file := hir.RealFile(id)

	first, ok := s.ParseFile(file)
	if !ok || len(first.Calls()) != 1 {
		t.Fatalf("ParseFile = %v, %v", first, ok)
	}
	second, _ := s.ParseFile(file)
	if first != second || s.Parses() != 1 {
		t.Errorf("expected cached parse, parses=%d", s.Parses())
	}

	s.SetFileText(id, []byte("line!() file!()"))
	if s.Revision(file) != 1 {
		t.Errorf("Revision = %d, want 1", s.Revision(file))
	}
	third, _ := s.ParseFile(file)
	if len(third.Calls()) != 2 || s.Parses() != 2 {
		t.Errorf("expected reparse after SetFileText, calls=%d parses=%d", len(third.Calls()), s.Parses())
	}
	if got := s.LineIndex(id).Len(); got != 15 {
		t.Errorf("LineIndex not rebuilt: Len = %d", got)
	}
}

func TestParseConcurrent(t *testing.T) {
	s := db.New(nil, db.Options{})
	file := hir.RealFile(s.AddFile("main.rs", []byte("stringify!(a) line!()")))
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if f, ok := s.ParseFile(file); !ok || len(f.Calls()) != 2 {
				t.Errorf("unexpected parse %v, %v", f, ok)
			}
		}()
	}
	wg.Wait()
	if n := s.Parses(); n < 1 || n > 32 {
		t.Errorf("Parses() = %d", n)
	}
}

func TestParseDiagnostics(t *testing.T) {
	s := db.New(nil, db.Options{})
	file := hir.RealFile(s.AddFile("bad.rs", []byte("line!( \"open")))
	diags := s.ParseDiagnostics(file)
	codes := make(map[diag.Code]bool)
	for _, d := range diags {
		codes[d.Code] = true
	}
	if !codes[diag.LexUnterminatedString] || !codes[diag.SynUnclosedDelimiter] {
		t.Errorf("unexpected diagnostics %v", diags)
	}
}

func TestRecordExpansion(t *testing.T) {
	s := db.New(nil, db.Options{})
	root := hir.RealFile(s.AddFile("main.rs", []byte("stringify!(line!())")))
	id := s.InternMacroCall(hir.MacroCallLoc{AstID: hir.AstID{File: root, Index: 0}})

	if _, ok := s.MacroFileText(id); ok {
		t.Fatal("macro file must not exist before recording")
	}
	mf := s.RecordExpansion(id, []byte(`"line!()"`))
	if text, ok := s.MacroFileText(id); !ok || string(text) != `"line!()"` {
		t.Errorf("MacroFileText = %q, %v", text, ok)
	}
	if string(hir.FileText(s, mf)) != `"line!()"` {
		t.Error("hir.FileText must read the recorded expansion")
	}
	if f, ok := s.ParseFile(mf); !ok || len(f.Calls()) != 0 {
		t.Errorf("macro file parse = %v, %v", f, ok)
	}

	s.RecordExpansion(id, []byte("line!()"))
	if f, _ := s.ParseFile(mf); len(f.Calls()) != 1 {
		t.Error("re-recorded expansion must be reparsed")
	}
	if s.Revision(mf) != 1 {
		t.Errorf("Revision(macro) = %d, want 1", s.Revision(mf))
	}
	// раскрытие хранится как виртуальный файл <macro#N>
	if _, ok := s.FileSet().GetLatest(fmt.Sprintf("<macro#%d>", id)); !ok {
		t.Errorf("no virtual file for macro call %d", id)
	}

	inner := s.InternMacroCall(hir.MacroCallLoc{AstID: hir.AstID{File: mf, Index: 0}})
	rootID, _ := root.FileID()
	if got := hir.OriginalFile(s, hir.MacroFile(inner)); got != rootID {
		t.Errorf("OriginalFile through two hops = %d, want %d", got, rootID)
	}
}

func TestUnknownFiles(t *testing.T) {
	s := db.New(nil, db.Options{})
	if s.FileText(5) != nil || s.LineIndex(5) != nil {
		t.Error("unknown file must have no text and no index")
	}
	if _, ok := s.ParseFile(hir.RealFile(5)); ok {
		t.Error("unknown file must not parse")
	}
	if _, ok := s.File(5); ok {
		t.Error("unknown file must not have metadata")
	}
	s.SetFileText(5, []byte("x"))
	if s.FileText(5) != nil {
		t.Error("SetFileText must not create files")
	}
}
