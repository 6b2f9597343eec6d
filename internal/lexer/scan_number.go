package lexer

import (
	"hirexpand/internal/diag"
	"hirexpand/internal/token"
)

// Поддержка: 0, 123, 0b..., 0o..., 0x..., 1.0, 1e-3, 1.0e+10 и суффиксы (1u32, 2.5f64).
// Неверные формы репортим в opts.Reporter, токен по возможности завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cur.mark()
	kind := token.IntLit

	if lx.cur.peek() == '0' {
		lx.cur.bump()
		switch lx.cur.peek() {
		case 'b', 'B':
			lx.cur.bump()
			lx.eatWhile(func(b byte) bool { return b == '0' || b == '1' || b == '_' })
			return lx.finishNumber(start, kind)
		case 'o', 'O':
			lx.cur.bump()
			lx.eatWhile(func(b byte) bool { return (b >= '0' && b <= '7') || b == '_' })
			return lx.finishNumber(start, kind)
		case 'x', 'X':
			lx.cur.bump()
			lx.eatWhile(func(b byte) bool { return isHex(b) || b == '_' })
			return lx.finishNumber(start, kind)
		}
	}

	lx.eatWhile(isDecOrUnderscore)

	// дробная часть: "1.5", "1.", но не "1..2", не "1.foo()"
	if lx.cur.peek() == '.' {
		switch b1 := lx.cur.at(1); {
		case b1 == '.' || isIdentStartByte(b1) || b1 >= utf8RuneSelf:
			// диапазон или вызов метода
		default:
			lx.cur.bump()
			kind = token.FloatLit
			lx.eatWhile(isDecOrUnderscore)
		}
	}

	// экспонента
	if b := lx.cur.peek(); b == 'e' || b == 'E' {
		mark := lx.cur.mark()
		lx.cur.bump()
		if s := lx.cur.peek(); s == '+' || s == '-' {
			lx.cur.bump()
		}
		if !isDec(lx.cur.peek()) {
			if kind == token.FloatLit {
				sp := lx.cur.spanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
				return lx.emit(token.Invalid, start)
			}
			// "1e" без цифр это суффикс, а не экспонента
			lx.cur.reset(mark)
		} else {
			kind = token.FloatLit
			lx.eatWhile(isDecOrUnderscore)
		}
	}

	return lx.finishNumber(start, kind)
}

// finishNumber съедает суффикс типа (u8, i64, f32, ...).
func (lx *Lexer) finishNumber(start pos, kind token.Kind) token.Token {
	if isIdentStartByte(lx.cur.peek()) {
		lx.eatWhile(isIdentContinueByte)
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) eatWhile(pred func(byte) bool) {
	for !lx.cur.eof() && pred(lx.cur.peek()) {
		lx.cur.bump()
	}
}

func isDecOrUnderscore(b byte) bool { return isDec(b) || b == '_' }
