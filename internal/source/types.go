package source

type (
	// FileID uniquely identifies a real source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
// Content is shared with every reader and must not be modified.
type File struct {
	ID       FileID
	Path     string
	Content  []byte
	Lines    *LineIndex
	Hash     [32]byte
	Flags    FileFlags
	Revision uint64
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
