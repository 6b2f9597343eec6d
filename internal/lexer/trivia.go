package lexer

import (
	"hirexpand/internal/diag"
	"hirexpand/internal/token"
)

// collectLeadingTrivia накапливает в hold всё, что стоит перед следующим
// значимым токеном. Внутри группы аргументов эти trivia потом попадают в
// текст stringify!, поэтому их спаны точно совпадают с исходником.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for {
		tr, ok := lx.scanTrivia()
		if !ok {
			return
		}
		lx.hold = append(lx.hold, tr)
	}
}

// scanTrivia читает один элемент trivia:
//   - пробелы, табы и '\r' подряд: TriviaSpace
//   - '\n' подряд: TriviaNewline
//   - "//" до конца строки: TriviaLineComment, "///": TriviaDocLine
//   - "/* */" с вложенностью: TriviaBlockComment
func (lx *Lexer) scanTrivia() (token.Trivia, bool) {
	start := lx.cur.mark()
	var kind token.TriviaKind
	switch b := lx.cur.peek(); {
	case lx.cur.eof():
		return token.Trivia{}, false
	case isBlank(b):
		lx.eatWhile(isBlank)
		kind = token.TriviaSpace
	case b == '\n':
		lx.eatWhile(func(b byte) bool { return b == '\n' })
		kind = token.TriviaNewline
	case b == '/' && lx.cur.at(1) == '/':
		kind = token.TriviaLineComment
		if lx.cur.at(2) == '/' {
			kind = token.TriviaDocLine
		}
		lx.eatWhile(func(b byte) bool { return b != '\n' })
	case b == '/' && lx.cur.at(1) == '*':
		kind = token.TriviaBlockComment
		if !lx.skipBlockComment() {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cur.spanFrom(start), "unterminated block comment")
		}
	default:
		return token.Trivia{}, false
	}
	sp := lx.cur.spanFrom(start)
	return token.Trivia{Kind: kind, Span: sp, Text: lx.cur.text(sp)}, true
}

// skipBlockComment съедает /* ... */ с учётом вложенности; false, если
// комментарий не закрыт до конца файла.
func (lx *Lexer) skipBlockComment() bool {
	lx.cur.advance(2)
	for depth := 1; depth > 0; {
		switch {
		case lx.cur.eof():
			return false
		case lx.cur.peek() == '/' && lx.cur.at(1) == '*':
			lx.cur.advance(2)
			depth++
		case lx.cur.peek() == '*' && lx.cur.at(1) == '/':
			lx.cur.advance(2)
			depth--
		default:
			lx.cur.bump()
		}
	}
	return true
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }
