package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"hirexpand/internal/source"
	"hirexpand/internal/token"
)

// pos is a saved cursor offset.
type pos uint32

// openGroup is a delimiter the cursor has entered but not yet left.
type openGroup struct {
	kind token.Kind
	at   uint32
}

// cursor reads one file byte by byte. It also keeps the stack of open
// delimiter groups, so every token can be stamped with the depth of the
// argument group around it.
type cursor struct {
	src    []byte
	file   source.FileID
	off    uint32
	end    uint32
	groups []openGroup
}

func newCursor(f *source.File) cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("%s: file too large: %w", f.Path, err))
	}
	return cursor{src: f.Content, file: f.ID, end: end}
}

func (c *cursor) eof() bool { return c.off >= c.end }

// at returns the byte n positions ahead of the cursor, 0 past the end.
func (c *cursor) at(n uint32) byte {
	if c.off+n >= c.end {
		return 0
	}
	return c.src[c.off+n]
}

func (c *cursor) peek() byte { return c.at(0) }

func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	return b
}

func (c *cursor) eat(b byte) bool {
	if c.eof() || c.src[c.off] != b {
		return false
	}
	c.off++
	return true
}

// advance moves n bytes forward, stopping at the end.
func (c *cursor) advance(n uint32) {
	c.off = min(c.off+n, c.end)
}

func (c *cursor) mark() pos { return pos(c.off) }

func (c *cursor) reset(p pos) { c.off = uint32(p) }

func (c *cursor) spanFrom(p pos) source.Span {
	return source.Span{File: c.file, Start: uint32(p), End: c.off}
}

func (c *cursor) text(sp source.Span) string {
	return string(c.src[sp.Start:sp.End])
}

// depth is the number of groups open at the cursor.
func (c *cursor) depth() int { return len(c.groups) }

// enter opens a group whose delimiter starts at offset at.
func (c *cursor) enter(kind token.Kind, at uint32) {
	c.groups = append(c.groups, openGroup{kind: kind, at: at})
}

// leave closes the innermost group if close matches its opener. A stray
// or mismatched closer leaves the stack as it was.
func (c *cursor) leave(close token.Kind) bool {
	n := len(c.groups)
	if n == 0 || c.groups[n-1].kind.Closing() != close {
		return false
	}
	c.groups = c.groups[:n-1]
	return true
}
