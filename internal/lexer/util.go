package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

// peekRune декодирует руну под курсором; size == 0 означает конец файла.
func (lx *Lexer) peekRune() (r rune, size int) {
	switch {
	case lx.cur.eof():
		return utf8.RuneError, 0
	case lx.cur.peek() < utf8.RuneSelf:
		return rune(lx.cur.peek()), 1
	}
	return utf8.DecodeRune(lx.cur.src[lx.cur.off:lx.cur.end])
}

// bumpRune сдвигает курсор на одну руну; битый UTF-8 съедается по байту.
func (lx *Lexer) bumpRune() {
	_, size := lx.peekRune()
	width, err := safecast.Conv[uint32](size)
	if err != nil {
		panic(fmt.Errorf("rune width %d: %w", size, err))
	}
	lx.cur.advance(width)
}

func (lx *Lexer) peekAt(at uint32) byte {
	return lx.cur.at(at)
}

// Классы ASCII-байтов для быстрых проверок без unicode.
const (
	classIdentStart uint8 = 1 << iota
	classDigit
	classHex
)

var asciiClass = func() (tbl [utf8.RuneSelf]uint8) {
	tbl['_'] = classIdentStart
	for c := 'a'; c <= 'z'; c++ {
		tbl[c] |= classIdentStart
		tbl[c-'a'+'A'] |= classIdentStart
	}
	for c := '0'; c <= '9'; c++ {
		tbl[c] = classDigit | classHex
	}
	for c := 'a'; c <= 'f'; c++ {
		tbl[c] |= classHex
		tbl[c-'a'+'A'] |= classHex
	}
	return tbl
}()

func hasClass(b byte, class uint8) bool {
	return b < utf8.RuneSelf && asciiClass[b]&class != 0
}

func isIdentStartByte(b byte) bool    { return hasClass(b, classIdentStart) }
func isIdentContinueByte(b byte) bool { return hasClass(b, classIdentStart|classDigit) }
func isDec(b byte) bool               { return hasClass(b, classDigit) }
func isHex(b byte) bool               { return hasClass(b, classHex) }

// Приближение XID_Start / XID_Continue через категории Unicode.
var (
	identStartTables    = []*unicode.RangeTable{unicode.L, unicode.Nl, unicode.Other_ID_Start}
	identContinueTables = []*unicode.RangeTable{
		unicode.L, unicode.Nl, unicode.Other_ID_Start,
		unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue,
	}
)

func isIdentStartRune(r rune) bool {
	if r < utf8.RuneSelf {
		return isIdentStartByte(byte(r))
	}
	return unicode.In(r, identStartTables...)
}

func isIdentContinueRune(r rune) bool {
	if r < utf8.RuneSelf {
		return isIdentContinueByte(byte(r))
	}
	return unicode.In(r, identContinueTables...)
}
