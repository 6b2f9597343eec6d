package source

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// LineIndex stores the byte offsets of every '\n' in a text, in ascending
// order. It is immutable once built and safe for concurrent use.
type LineIndex struct {
	newlines []uint32
	size     uint32
}

// NewLineIndex scans content once and records its newline offsets.
func NewLineIndex(content []byte) *LineIndex {
	size, err := safecast.Conv[uint32](len(content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	out := make([]uint32, 0, len(content)/32+1)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return &LineIndex{newlines: out, size: size}
}

// Len returns the length in bytes of the indexed text.
func (idx *LineIndex) Len() uint32 {
	return idx.size
}

// LineCount returns the number of lines; an empty text has one line.
func (idx *LineIndex) LineCount() uint32 {
	return uint32(len(idx.newlines)) + 1
}

// LineOf returns the 1-based line of byte offset off: one plus the number of
// newlines located strictly before off. Offsets past the end are clamped.
func (idx *LineIndex) LineOf(off uint32) uint32 {
	if off > idx.size {
		off = idx.size
	}
	// количество '\n' с позицией < off
	n := sort.Search(len(idx.newlines), func(i int) bool {
		return idx.newlines[i] >= off
	})
	return uint32(n) + 1
}

// LineCol converts a byte offset into a 1-based line and byte column.
func (idx *LineIndex) LineCol(off uint32) LineCol {
	if off > idx.size {
		off = idx.size
	}
	line := idx.LineOf(off)
	var start uint32
	if line > 1 {
		start = idx.newlines[line-2] + 1
	}
	return LineCol{Line: line, Col: off - start + 1}
}

// LineRange returns the byte range [start, end) of a 1-based line, without the
// trailing newline. ok is false when the line does not exist.
func (idx *LineIndex) LineRange(line uint32) (start, end uint32, ok bool) {
	if line == 0 || line > idx.LineCount() {
		return 0, 0, false
	}
	if line > 1 {
		start = idx.newlines[line-2] + 1
	}
	if int(line-1) < len(idx.newlines) {
		end = idx.newlines[line-1]
	} else {
		end = idx.size
	}
	return start, end, true
}
