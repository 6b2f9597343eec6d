package lexer

import (
	"hirexpand/internal/source"
	"hirexpand/internal/token"
)

type Lexer struct {
	cur  cursor
	opts Options
	look *token.Token   // 1 элементный буфер для токена
	hold []token.Trivia // накопленные leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		cur:  newCursor(file),
		opts: opts,
	}
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	// EOF: Leading из hold не приклеиваем
	if lx.cur.eof() {
		lx.hold = nil
		return token.Token{
			Kind:  token.EOF,
			Span:  lx.emptySpan(),
			Depth: lx.cur.depth(),
		}
	}

	ch := lx.cur.peek()
	var tok token.Token

	switch {
	case ch == 'r' && lx.isRawStringStart(1):
		tok = lx.scanRawString(1)

	case ch == 'b' && lx.peekAt(1) == 'r' && lx.isRawStringStart(2):
		tok = lx.scanRawString(2)

	case ch == 'b' && lx.peekAt(1) == '"':
		tok = lx.scanString(1, token.ByteStringLit)

	case ch == 'b' && lx.peekAt(1) == '\'':
		tok = lx.scanQuote(1)

	case isIdentStartByte(ch):
		tok = lx.scanIdent()

	case ch >= utf8RuneSelf:
		// Возможный Unicode идентификатор → scanIdent() разберётся
		tok = lx.scanIdent()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString(0, token.StringLit)

	case ch == '\'':
		tok = lx.scanQuote(0)

	default:
		tok = lx.scanPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	lx.track(&tok)
	return tok
}

// track stamps tok with the number of groups around it and updates the
// group stack. An opener and its matching closer get the depth of the
// tokens outside the group; a stray closer does not change the stack.
func (lx *Lexer) track(tok *token.Token) {
	switch {
	case tok.Kind.IsOpenDelim():
		tok.Depth = lx.cur.depth()
		lx.cur.enter(tok.Kind, tok.Span.Start)
	case tok.Kind.IsCloseDelim():
		lx.cur.leave(tok.Kind)
		tok.Depth = lx.cur.depth()
	default:
		tok.Depth = lx.cur.depth()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All lexes the remaining input; the last element is always EOF.
func (lx *Lexer) All() []token.Token {
	tokens := make([]token.Token, 0, 64)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return lx.cur.spanFrom(lx.cur.mark())
}

func (lx *Lexer) emit(kind token.Kind, start pos) token.Token {
	sp := lx.cur.spanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.cur.text(sp)}
}
