package db

import (
	"fmt"
	"sync"
	"sync/atomic"

	"fortio.org/safecast"
	"golang.org/x/sync/singleflight"

	"hirexpand/internal/diag"
	"hirexpand/internal/hir"
	"hirexpand/internal/source"
	"hirexpand/internal/syntax"
)

// Options tune parsing inside the store.
type Options struct {
	// MaxDiagnostics bounds the per-file syntax diagnostics bag.
	MaxDiagnostics int
}

type parsed struct {
	rev   uint64
	file  *syntax.File
	diags *diag.Bag
}

// Store implements hir.Database.
type Store struct {
	mu     sync.RWMutex
	fs     *source.FileSet
	calls  []hir.MacroCallLoc // calls[id-1]
	ids    map[hir.MacroCallLoc]hir.MacroCallID
	macros map[hir.MacroCallID]source.FileID
	parsed map[hir.HirFileID]parsed
	group  singleflight.Group
	opts   Options

	parses atomic.Int64
}

var _ hir.Database = (*Store)(nil)

// New creates a store over fs; a nil fs gets a fresh FileSet.
func New(fs *source.FileSet, opts Options) *Store {
	if fs == nil {
		fs = source.NewFileSet()
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 100
	}
	return &Store{
		fs:     fs,
		ids:    make(map[hir.MacroCallLoc]hir.MacroCallID),
		macros: make(map[hir.MacroCallID]source.FileID),
		parsed: make(map[hir.HirFileID]parsed),
		opts:   opts,
	}
}

// FileSet returns the underlying file set. It must not be used while other
// goroutines modify the store.
func (s *Store) FileSet() *source.FileSet {
	return s.fs
}

// AddFile adds an in-memory real file.
func (s *Store) AddFile(path string, text []byte) source.FileID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fs.AddVirtual(path, text)
}

// LoadFile reads a real file from disk.
func (s *Store) LoadFile(path string) (source.FileID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.fs.Load(path)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}
	return id, nil
}

// SetFileText replaces the text of a real file and starts a new revision;
// cached syntax of the old revision is dropped.
func (s *Store) SetFileText(id source.FileID, text []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fs.Get(id) == nil {
		return
	}
	s.fs.Update(id, text)
	delete(s.parsed, hir.RealFile(id))
}

// File returns a snapshot of a real file's metadata.
func (s *Store) File(id source.FileID) (source.File, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f := s.fs.Get(id)
	if f == nil {
		return source.File{}, false
	}
	return *f, true
}

// Revision returns the current revision of a real or macro file.
func (s *Store) Revision(file hir.HirFileID) uint64 {
	snap, ok := s.snapshot(file)
	if !ok {
		return 0
	}
	return snap.Revision
}

// InternMacroCall returns the id of loc, allocating one on first sight.
func (s *Store) InternMacroCall(loc hir.MacroCallLoc) hir.MacroCallID {
	s.mu.RLock()
	id, ok := s.ids[loc]
	s.mu.RUnlock()
	if ok {
		return id
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.ids[loc]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(s.calls) + 1)
	if err != nil {
		panic(fmt.Errorf("macro call overflow: %w", err))
	}
	s.calls = append(s.calls, loc)
	id = hir.MacroCallID(n)
	s.ids[loc] = id
	return id
}

// LookupMacroCall implements hir.Database.
func (s *Store) LookupMacroCall(id hir.MacroCallID) (hir.MacroCallLoc, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !id.IsValid() || int(id) > len(s.calls) {
		return hir.MacroCallLoc{}, false
	}
	return s.calls[id-1], true
}

// MacroCalls returns the number of interned calls.
func (s *Store) MacroCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.calls)
}

// RecordExpansion stores text as the virtual file of call id and returns
// that file. Recording again replaces the text under a new revision.
func (s *Store) RecordExpansion(id hir.MacroCallID, text []byte) hir.HirFileID {
	file := hir.MacroFile(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if src, ok := s.macros[id]; ok {
		s.fs.Update(src, text)
		delete(s.parsed, file)
		return file
	}
	s.macros[id] = s.fs.AddVirtual(fmt.Sprintf("<macro#%d>", id), text)
	return file
}

// FileText implements hir.Database. Unknown files have no text.
func (s *Store) FileText(id source.FileID) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if f := s.fs.Get(id); f != nil {
		return f.Content
	}
	return nil
}

// MacroFileText implements hir.Database.
func (s *Store) MacroFileText(id hir.MacroCallID) ([]byte, bool) {
	snap, ok := s.snapshot(hir.MacroFile(id))
	if !ok {
		return nil, false
	}
	return snap.Content, true
}

// LineIndex implements hir.Database. The index is rebuilt with every new
// revision of the file.
func (s *Store) LineIndex(id source.FileID) *source.LineIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if f := s.fs.Get(id); f != nil {
		return f.Lines
	}
	return nil
}

// ParseFile implements hir.Database. Syntax is cached per file revision.
func (s *Store) ParseFile(file hir.HirFileID) (*syntax.File, bool) {
	p, ok := s.parse(file)
	if !ok {
		return nil, false
	}
	return p.file, true
}

// ParseDiagnostics returns lexer and syntax diagnostics of the cached parse.
func (s *Store) ParseDiagnostics(file hir.HirFileID) []diag.Diagnostic {
	p, ok := s.parse(file)
	if !ok {
		return nil
	}
	return p.diags.Items()
}

// Parses returns how many times a file was actually parsed.
func (s *Store) Parses() int64 {
	return s.parses.Load()
}

func (s *Store) snapshot(file hir.HirFileID) (source.File, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var src source.FileID
	if id, ok := file.FileID(); ok {
		src = id
	} else {
		call, _ := file.MacroCall()
		id, ok := s.macros[call]
		if !ok {
			return source.File{}, false
		}
		src = id
	}
	f := s.fs.Get(src)
	if f == nil {
		return source.File{}, false
	}
	return *f, true
}

func (s *Store) parse(file hir.HirFileID) (parsed, bool) {
	snap, ok := s.snapshot(file)
	if !ok {
		return parsed{}, false
	}

	s.mu.RLock()
	p, hit := s.parsed[file]
	s.mu.RUnlock()
	if hit && p.rev == snap.Revision {
		return p, true
	}

	key := fmt.Sprintf("%s@%d", file, snap.Revision)
	v, _, _ := s.group.Do(key, func() (any, error) {
		s.parses.Add(1)
		bag := diag.NewBag(s.opts.MaxDiagnostics)
		f := syntax.ParseFile(&snap, syntax.Options{Reporter: &diag.BagReporter{Bag: bag}})
		out := parsed{rev: snap.Revision, file: f, diags: bag}

		s.mu.Lock()
		if cur, ok := s.parsed[file]; !ok || cur.rev <= out.rev {
			s.parsed[file] = out
		}
		s.mu.Unlock()
		return out, nil
	})
	return v.(parsed), true
}
