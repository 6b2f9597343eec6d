package syntax

import (
	"fmt"

	"fortio.org/safecast"

	"hirexpand/internal/diag"
	"hirexpand/internal/lexer"
	"hirexpand/internal/source"
	"hirexpand/internal/token"
	"hirexpand/internal/tt"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter // nil: ошибки не сообщаются
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// ParseFile lexes file and parses the resulting tokens. Lexer diagnostics
// go to the same reporter.
func ParseFile(file *source.File, opts Options) *File {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	return Parse(file.ID, lx.All(), opts)
}

// Parse builds a File from already lexed tokens.
func Parse(id source.FileID, tokens []token.Token, opts Options) *File {
	p := parser{
		out:  &File{ID: id, Tokens: tokens},
		toks: tokens,
		opts: &opts,
	}
	p.matchDelims()
	p.parseNodes()
	return p.out
}

// parser: состояние разбора одного файла
type parser struct {
	out   *File
	toks  []token.Token
	match []int // индекс парного разделителя или -1
	opts  *Options
}

func (p *parser) report(code diag.Code, sp source.Span, msg string) {
	if p.opts.Reporter == nil || p.opts.Enough() {
		return
	}
	p.opts.CurrentErrors++
	diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
}

func (p *parser) matchDelims() {
	p.match = make([]int, len(p.toks))
	for i := range p.match {
		p.match[i] = -1
	}
	var stack []int
	for i, tok := range p.toks {
		switch {
		case tok.Kind.IsOpenDelim():
			stack = append(stack, i)
		case tok.Kind.IsCloseDelim():
			if len(stack) == 0 || p.toks[stack[len(stack)-1]].Kind.Closing() != tok.Kind {
				p.report(diag.SynUnbalancedDelimiter, tok.Span, fmt.Sprintf("unexpected closing delimiter %q", tok.Text))
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			p.match[open] = i
			p.match[i] = open
		}
	}
	for _, open := range stack {
		tok := p.toks[open]
		p.report(diag.SynUnclosedDelimiter, tok.Span, fmt.Sprintf("unclosed delimiter %q", tok.Text))
	}
}

func (p *parser) parseNodes() {
	i := 0
	for i < len(p.toks) {
		tok := p.toks[i]
		if tok.Kind != token.Ident {
			i++
			continue
		}
		if tok.Text == "macro_rules" && p.isBang(i+1) {
			i = p.parseRules(i)
			continue
		}
		end, path := p.path(i)
		if isReserved(path[len(path)-1]) || !p.isBang(end+1) {
			i = end + 1
			continue
		}
		i = p.parseCall(i, end, path)
	}
}

// path собирает сегменты `a::b::c`, начиная с идентификатора at.
// Возвращает индекс последнего сегмента.
func (p *parser) path(at int) (int, []string) {
	segs := []string{p.toks[at].Text}
	end := at
	for p.isPathSep(end+1) && end+3 < len(p.toks) && p.toks[end+3].Kind == token.Ident {
		end += 3
		segs = append(segs, p.toks[end].Text)
	}
	return end, segs
}

func (p *parser) isPathSep(at int) bool {
	if at+1 >= len(p.toks) {
		return false
	}
	first, second := p.toks[at], p.toks[at+1]
	return first.IsPunct(':') && second.IsPunct(':') && !second.HasLeadingTrivia()
}

// isBang: `!`, но не начало `!=`
func (p *parser) isBang(at int) bool {
	if at >= len(p.toks) || !p.toks[at].IsPunct('!') {
		return false
	}
	if at+1 < len(p.toks) {
		next := p.toks[at+1]
		if next.IsPunct('=') && !next.HasLeadingTrivia() {
			return false
		}
	}
	return true
}

// group returns the argument group opening at index at, and the index of
// its closing delimiter.
func (p *parser) group(at int) (*TokenTree, int, bool) {
	if at >= len(p.toks) || !p.toks[at].Kind.IsOpenDelim() || p.match[at] < 0 {
		return nil, 0, false
	}
	closeAt := p.match[at]
	open, closeTok := p.toks[at], p.toks[closeAt]
	return &TokenTree{
		Delimiter: delimiterOf(open.Kind),
		Span:      open.Span.Cover(closeTok.Span),
		Tokens:    p.toks[at : closeAt+1],
	}, closeAt, true
}

func (p *parser) parseCall(start, end int, path []string) int {
	bangAt := end + 1
	call := &MacroCall{
		index:    p.nextIndex(),
		Path:     path,
		PathSpan: p.toks[start].Span.Cover(p.toks[end].Span),
		Bang:     p.toks[bangAt].Span,
	}
	next := bangAt + 1
	if tree, closeAt, ok := p.group(bangAt + 1); ok {
		call.tree = tree
		call.span = call.PathSpan.Cover(tree.Span)
		next = closeAt + 1
	} else {
		call.span = call.PathSpan.Cover(call.Bang)
	}
	p.out.nodes = append(p.out.nodes, call)
	return next
}

func (p *parser) parseRules(at int) int {
	nameAt := at + 2
	kw := p.toks[at]
	if nameAt >= len(p.toks) || p.toks[nameAt].Kind != token.Ident {
		sp := p.toks[at+1].Span
		if nameAt < len(p.toks) {
			sp = p.toks[nameAt].Span
		}
		p.report(diag.SynUnexpectedToken, sp, "expected macro name after macro_rules!")
		return at + 2
	}
	rules := &MacroRules{
		index:    p.nextIndex(),
		Name:     p.toks[nameAt].Text,
		NameSpan: p.toks[nameAt].Span,
	}
	next := nameAt + 1
	if body, closeAt, ok := p.group(nameAt + 1); ok {
		rules.Body = body
		rules.span = kw.Span.Cover(body.Span)
		next = closeAt + 1
	} else {
		sp := rules.NameSpan
		if next < len(p.toks) {
			sp = p.toks[next].Span
		}
		p.report(diag.SynUnexpectedToken, sp, fmt.Sprintf("expected body of macro %q", rules.Name))
		rules.span = kw.Span.Cover(rules.NameSpan)
	}
	p.out.nodes = append(p.out.nodes, rules)
	return next
}

func (p *parser) nextIndex() uint32 {
	idx, err := safecast.Conv[uint32](len(p.out.nodes))
	if err != nil {
		panic(fmt.Errorf("syntax node overflow: %w", err))
	}
	return idx
}

func delimiterOf(k token.Kind) tt.DelimiterKind {
	switch k {
	case token.LParen:
		return tt.DelimParen
	case token.LBrace:
		return tt.DelimBrace
	case token.LBracket:
		return tt.DelimBracket
	default:
		return tt.DelimNone
	}
}
