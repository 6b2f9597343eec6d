package lexer

import (
	"hirexpand/internal/diag"
	"hirexpand/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdent сканирует [Ident]; ключевые слова остаются идентификаторами.
// Token.Text: ровно исходный срез. Raw identifiers (r#foo) входят в Text целиком.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cur.mark()

	if lx.cur.at(0) == 'r' && lx.cur.at(1) == '#' && isIdentStartByte(lx.cur.at(2)) {
		lx.cur.bump()
		lx.cur.bump()
	}

	r, sz := lx.peekRune()
	if sz == 0 {
		return lx.emit(token.Invalid, start)
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanPunct()
		}
		lx.cur.bump()
	} else {
		if !isIdentStartRune(r) {
			lx.bumpRune()
			sp := lx.cur.spanFrom(start)
			lx.errLex(diag.LexUnknownChar, sp, "unknown character")
			return lx.emit(token.Invalid, start)
		}
		lx.bumpRune()
	}
	for {
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	return lx.emit(token.Ident, start)
}
