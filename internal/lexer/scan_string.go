package lexer

import (
	"hirexpand/internal/diag"
	"hirexpand/internal/token"
)

// scanString: "..." и b"...". prefix: длина префикса перед кавычкой.
// Переводы строк внутри литерала допустимы; escape-последовательности не
// валидируются здесь, только пропускаются.
func (lx *Lexer) scanString(prefix int, kind token.Kind) token.Token {
	start := lx.cur.mark()
	for range prefix {
		lx.cur.bump()
	}
	lx.cur.bump() // opening '"'
	for !lx.cur.eof() {
		b := lx.cur.bump()
		if b == '"' {
			lx.finishSuffix()
			return lx.emit(kind, start)
		}
		if b == '\\' && !lx.cur.eof() {
			lx.cur.bump()
		}
	}
	sp := lx.cur.spanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return lx.emit(token.Invalid, start)
}

// isRawStringStart проверяет r"..." / r#"..."# начиная со смещения at.
func (lx *Lexer) isRawStringStart(at uint32) bool {
	for {
		switch lx.peekAt(at) {
		case '#':
			at++
		case '"':
			return true
		default:
			return false
		}
	}
}

// scanRawString: r"...", r#"..."#, br"...". prefix: длина r/br.
func (lx *Lexer) scanRawString(prefix int) token.Token {
	start := lx.cur.mark()
	for range prefix {
		lx.cur.bump()
	}
	hashes := 0
	for lx.cur.eat('#') {
		hashes++
	}
	lx.cur.bump() // opening '"'
	kind := token.RawStringLit
	if prefix == 2 {
		kind = token.ByteStringLit
	}
	for !lx.cur.eof() {
		if lx.cur.bump() != '"' {
			continue
		}
		closing := 0
		for closing < hashes && lx.cur.peek() == '#' {
			lx.cur.bump()
			closing++
		}
		if closing == hashes {
			lx.finishSuffix()
			return lx.emit(kind, start)
		}
	}
	sp := lx.cur.spanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated raw string literal")
	return lx.emit(token.Invalid, start)
}

// scanQuote различает 'c' (CharLit), b'c' (ByteLit) и 'a (Lifetime).
func (lx *Lexer) scanQuote(prefix int) token.Token {
	start := lx.cur.mark()
	for range prefix {
		lx.cur.bump()
	}
	lx.cur.bump() // '\''

	kind := token.CharLit
	if prefix == 1 {
		kind = token.ByteLit
	}

	switch {
	case lx.cur.peek() == '\\':
		lx.cur.bump()
		lx.bumpRune() // экранированный символ, в том числе '\''
		for !lx.cur.eof() && lx.cur.peek() != '\'' && lx.cur.peek() != '\n' {
			lx.cur.bump()
		}
	case prefix == 0 && lx.startsLifetime():
		// 'ident без закрывающей кавычки: lifetime / label
		lx.bumpRune()
		for {
			r, sz := lx.peekRune()
			if sz == 0 || !isIdentContinueRune(r) {
				break
			}
			lx.bumpRune()
		}
		if lx.cur.peek() != '\'' {
			return lx.emit(token.Lifetime, start)
		}
	default:
		lx.bumpRune()
	}

	if !lx.cur.eat('\'') {
		sp := lx.cur.spanFrom(start)
		lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
		return lx.emit(token.Invalid, start)
	}
	lx.finishSuffix()
	return lx.emit(kind, start)
}

func (lx *Lexer) startsLifetime() bool {
	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		return false
	}
	// 'a' это символ, а 'ab или 'a, это lifetime
	return lx.peekAt(uint32(sz)) != '\''
}

// finishSuffix съедает суффикс литерала ("foo"suffix), как в token trees.
func (lx *Lexer) finishSuffix() {
	if isIdentStartByte(lx.cur.peek()) {
		lx.eatWhile(isIdentContinueByte)
	}
}
