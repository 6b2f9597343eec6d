package lexer

import (
	"hirexpand/internal/diag"
	"hirexpand/internal/token"
)

// scanPunct: односимвольная пунктуация и разделители.
// Составные операторы (::, =>, ..=) собирает token tree через Spacing.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cur.mark()
	ch := lx.cur.bump()
	switch ch {
	case '(':
		return lx.emit(token.LParen, start)
	case ')':
		return lx.emit(token.RParen, start)
	case '{':
		return lx.emit(token.LBrace, start)
	case '}':
		return lx.emit(token.RBrace, start)
	case '[':
		return lx.emit(token.LBracket, start)
	case ']':
		return lx.emit(token.RBracket, start)
	}
	if isPunctByte(ch) {
		return lx.emit(token.Punct, start)
	}
	if ch >= utf8RuneSelf {
		// целиком съедаем невалидную руну, чтобы не резать UTF-8
		lx.cur.reset(start)
		lx.bumpRune()
	}
	sp := lx.cur.spanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	return lx.emit(token.Invalid, start)
}

func isPunctByte(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '%', '^', '!', '&', '|', '=', '<', '>', '@',
		'.', ',', ';', ':', '#', '$', '?', '~', '\\':
		return true
	default:
		return false
	}
}
