package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"hirexpand/internal/builtin"
	"hirexpand/internal/diag"
	"hirexpand/internal/hir"
	"hirexpand/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 2

// CacheSchema reports the on-disk payload version; entries written under
// another schema are treated as misses.
func CacheSchema() uint16 { return diskCacheSchemaVersion }

// DiskCache хранит результаты раскрытия по хешу содержимого файла.
// Entries live in <dir>/exp/<first two hex digits>/<key>.mp.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of expanding one file. Spans are kept
// as offsets; the FileID is restored on load.
type DiskPayload struct {
	Schema      uint16
	Path        string
	Expansions  []CachedExpansion
	Diagnostics []CachedDiagnostic
	Dropped     uint32 // diagnostics past the limit
}

type CachedExpansion struct {
	Index    uint32
	Path     string
	Resolved bool
	Tag      uint8
	Builtin  uint8
	Start    uint32
	End      uint32
	Output   string
	ErrKind  uint8 // builtin.ExpandErrorKind, 0 если ошибка другая
	ErrText  string
}

type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
}

type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

// CacheStats summarizes what a cache directory holds.
type CacheStats struct {
	Entries int
	Bytes   int64
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/<app>, falling back
// to the user cache directory of the platform.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		var err error
		if base, err = os.UserCacheDir(); err != nil {
			return nil, fmt.Errorf("locate cache dir: %w", err)
		}
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens the cache in dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(filepath.Join(dir, "exp"), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache directory; "" for a nil cache.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// cacheKey derives the entry key for a file. The payload depends on the
// diagnostic limit of the run that wrote it, so the limit is part of the
// key alongside the content hash and the schema version.
func cacheKey(content [32]byte, maxDiagnostics int) [32]byte {
	if maxDiagnostics <= 0 {
		maxDiagnostics = diag.DefaultLimit
	}
	var hdr [10]byte
	binary.LittleEndian.PutUint16(hdr[:2], diskCacheSchemaVersion)
	binary.LittleEndian.PutUint64(hdr[2:], uint64(maxDiagnostics))
	h := sha256.New()
	h.Write(hdr[:])
	h.Write(content[:])
	var key [32]byte
	h.Sum(key[:0])
	return key
}

func (c *DiskCache) entryPath(key [32]byte) string {
	name := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "exp", name[:2], name+".mp")
}

// Put writes payload through a temp file and a rename, so readers never
// see a half-written entry.
func (c *DiskCache) Put(key [32]byte, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	dst := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(dst), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), dst)
}

// Get reads a payload. A missing entry or one from another schema is a
// miss, reported as (false, nil).
func (c *DiskCache) Get(key [32]byte, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.entryPath(key))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// Stats counts the entries and their total size.
func (c *DiskCache) Stats() (CacheStats, error) {
	var st CacheStats
	if c == nil {
		return st, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	err := filepath.WalkDir(filepath.Join(c.dir, "exp"), func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".mp" {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		st.Entries++
		st.Bytes += info.Size()
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		err = nil
	}
	return st, err
}

// DropAll removes every entry. The directory is renamed away first, so a
// concurrent run sees either the old cache or an empty one.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Join(c.dir, "exp"), 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

func resultToPayload(res *FileResult) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        res.Path,
		Dropped:     uint32(res.Bag.Dropped()),
		Expansions:  make([]CachedExpansion, len(res.Expansions)),
		Diagnostics: make([]CachedDiagnostic, 0, res.Bag.Len()),
	}
	for i, e := range res.Expansions {
		ce := CachedExpansion{
			Index:    e.Index,
			Path:     e.Path,
			Resolved: e.Resolved,
			Tag:      uint8(e.Kind.Tag),
			Builtin:  uint8(e.Kind.Builtin),
			Start:    e.Span.Start,
			End:      e.Span.End,
			Output:   e.Output,
		}
		if e.Err != nil {
			ce.ErrText = e.Err.Error()
			var ee *builtin.ExpandError
			if errors.As(e.Err, &ee) {
				ce.ErrKind = uint8(ee.Kind)
			}
		}
		payload.Expansions[i] = ce
	}
	for _, d := range res.Bag.Items() {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return payload
}

// payloadToResult restores a cached result for the file id. Call ids are
// not restored: cached calls are not interned in this run.
func payloadToResult(payload *DiskPayload, path string, id source.FileID, maxDiagnostics int) FileResult {
	span := func(start, end uint32) source.Span {
		return source.Span{File: id, Start: start, End: end}
	}
	res := FileResult{
		Path:       path,
		FileID:     id,
		Expansions: make([]Expansion, len(payload.Expansions)),
		Bag:        diag.NewBag(maxDiagnostics),
		Cached:     true,
	}
	for i, ce := range payload.Expansions {
		e := Expansion{
			Index:    ce.Index,
			Path:     ce.Path,
			Resolved: ce.Resolved,
			Kind:     hir.MacroDefKind{Tag: hir.MacroDefTag(ce.Tag), Builtin: hir.BuiltinExpander(ce.Builtin)},
			Span:     span(ce.Start, ce.End),
			Output:   ce.Output,
		}
		switch {
		case ce.ErrKind != 0:
			e.Err = &builtin.ExpandError{Kind: builtin.ExpandErrorKind(ce.ErrKind)}
		case ce.ErrText != "":
			e.Err = errors.New(ce.ErrText)
		}
		res.Expansions[i] = e
	}
	for _, cd := range payload.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), span(cd.Start, cd.End), cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(span(n.Start, n.End), n.Msg)
		}
		res.Bag.Add(d)
	}
	res.Bag.AddDropped(int(payload.Dropped))
	res.Bag.Dedup()
	return res
}
