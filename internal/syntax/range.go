package syntax

import (
	"fmt"

	"fortio.org/safecast"
)

// TextRange is a half-open byte range [start, end) within one file's text.
type TextRange struct {
	start uint32
	end   uint32
}

// NewTextRange panics when end < start.
func NewTextRange(start, end uint32) TextRange {
	if end < start {
		panic(fmt.Sprintf("syntax: invalid text range %d..%d", start, end))
	}
	return TextRange{start: start, end: end}
}

func (r TextRange) Start() uint32 { return r.start }
func (r TextRange) End() uint32   { return r.end }
func (r TextRange) Len() uint32   { return r.end - r.start }
func (r TextRange) Empty() bool   { return r.start == r.end }

// Contains reports whether off lies inside the range.
func (r TextRange) Contains(off uint32) bool {
	return off >= r.start && off < r.end
}

// Slice returns the part of text covered by the range, clamped to len(text).
func (r TextRange) Slice(text []byte) []byte {
	n, err := safecast.Conv[uint32](len(text))
	if err != nil {
		panic(fmt.Errorf("text length overflow: %w", err))
	}
	start, end := min(r.start, n), min(r.end, n)
	return text[start:end]
}

func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.start, r.end)
}
