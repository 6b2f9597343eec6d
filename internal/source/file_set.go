package source

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileSet owns every text the expander sees: files read from disk, virtual
// inputs and the synthetic files holding macro output. Ids are dense and
// never reused. It is not safe for concurrent mutation; readers may share it
// once loading is done.
type FileSet struct {
	files   []File
	latest  map[string]FileID
	baseDir string
}

func NewFileSet() *FileSet {
	return &FileSet{latest: make(map[string]FileID)}
}

// NewFileSetWithBase задаёт директорию, относительно которой печатаются пути.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// BaseDir возвращает базовую директорию, по умолчанию текущую.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir != "" {
		return fileSet.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Add registers content under path and returns a fresh id even when the path
// is already known; GetLatest then points at the new one.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	id := FileID(n)
	path = cleanPath(path)
	fileSet.files = append(fileSet.files, File{ID: id, Path: path, Flags: flags})
	fileSet.files[id].setContent(content)
	fileSet.latest[path] = id
	return id
}

// Load reads path from disk. A UTF-8 BOM is dropped and CRLF pairs become
// LF before anything is indexed, so offsets and line numbers always refer to
// the normalized text.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := normalizeText(raw)
	return fileSet.Add(path, content, flags), nil
}

func normalizeText(raw []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(raw, utf8BOM); ok {
		raw, flags = rest, flags|FileHadBOM
	}
	if bytes.Contains(raw, []byte("\r\n")) {
		raw, flags = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n")), flags|FileNormalizedCRLF
	}
	return raw, flags
}

// AddVirtual adds an in-memory text (stdin, macro output, tests) as is.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Update swaps the content of id in place; the id survives and Revision grows.
func (fileSet *FileSet) Update(id FileID, content []byte) {
	f := &fileSet.files[id]
	f.setContent(content)
	f.Revision++
}

func (f *File) setContent(content []byte) {
	f.Content = content
	f.Lines = NewLineIndex(content)
	f.Hash = sha256.Sum256(content)
}

// Get returns nil for ids the set never issued.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

func (fileSet *FileSet) Len() int { return len(fileSet.files) }

// GetLatest returns the newest id added under path.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.latest[cleanPath(path)]
	return id, ok
}

// Resolve converts a byte span into 1-based line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	lines := fileSet.files[span.File].Lines
	return lines.LineCol(span.Start), lines.LineCol(span.End)
}

// GetLine возвращает текст строки lineNum (1-based) без перевода строки,
// или "", если такой строки нет.
func (f *File) GetLine(lineNum uint32) string {
	start, end, ok := f.Lines.LineRange(lineNum)
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}

func cleanPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
