package tt

import (
	"fmt"

	"hirexpand/internal/source"
	"hirexpand/internal/token"
)

// DelimErrorKind classifies delimiter problems found while building a tree.
type DelimErrorKind uint8

const (
	// Unclosed: an opening delimiter without its closing pair.
	Unclosed DelimErrorKind = iota + 1
	// Unbalanced: a closing delimiter that does not match the open group.
	Unbalanced
)

// DelimError reports a delimiter mismatch at Span.
type DelimError struct {
	Kind DelimErrorKind
	Span source.Span
	Text string
}

func (e *DelimError) Error() string {
	switch e.Kind {
	case Unclosed:
		return fmt.Sprintf("unclosed delimiter %q at %s", e.Text, e.Span)
	default:
		return fmt.Sprintf("unexpected closing delimiter %q at %s", e.Text, e.Span)
	}
}

type frame struct {
	open  token.Token
	delim DelimiterKind
	trees []TokenTree
}

// FromTokens builds a DelimNone subtree from a token slice. A trailing EOF
// token is ignored; Invalid tokens are kept as Ident leaves so that errors
// upstream do not lose text.
func FromTokens(tokens []token.Token) (Subtree, error) {
	stack := []frame{{delim: DelimNone}}

	for i, tok := range tokens {
		top := &stack[len(stack)-1]
		switch {
		case tok.Kind == token.EOF:
			// конец ввода
		case tok.Kind.IsOpenDelim():
			stack = append(stack, frame{open: tok, delim: delimiterOf(tok.Kind)})
		case tok.Kind.IsCloseDelim():
			if len(stack) == 1 || stack[len(stack)-1].open.Kind.Closing() != tok.Kind {
				return Subtree{}, &DelimError{Kind: Unbalanced, Span: tok.Span, Text: tok.Text}
			}
			done := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			parent.trees = append(parent.trees, Subtree{Delimiter: done.delim, TokenTrees: done.trees})
		case tok.Kind == token.Punct:
			spacing := Alone
			if i+1 < len(tokens) && tokens[i+1].Kind == token.Punct && !tokens[i+1].HasLeadingTrivia() {
				spacing = Joint
			}
			top.trees = append(top.trees, Punct{Char: tok.Text[0], Spacing: spacing})
		case tok.IsLiteral():
			top.trees = append(top.trees, Literal{Text: tok.Text})
		default:
			// Ident, Lifetime и Invalid
			top.trees = append(top.trees, Ident{Text: tok.Text})
		}
	}

	if len(stack) > 1 {
		open := stack[len(stack)-1].open
		return Subtree{}, &DelimError{Kind: Unclosed, Span: open.Span, Text: open.Text}
	}
	return Subtree{Delimiter: DelimNone, TokenTrees: stack[0].trees}, nil
}

// GroupFromTokens builds the subtree of one delimited group: tokens must
// start with an opening delimiter and end with its matching close.
func GroupFromTokens(tokens []token.Token) (Subtree, error) {
	outer, err := FromTokens(tokens)
	if err != nil {
		return Subtree{}, err
	}
	if len(outer.TokenTrees) != 1 {
		return Subtree{}, fmt.Errorf("expected exactly one delimited group, got %d token trees", len(outer.TokenTrees))
	}
	group, ok := outer.TokenTrees[0].(Subtree)
	if !ok {
		return Subtree{}, fmt.Errorf("expected a delimited group")
	}
	return group, nil
}

func delimiterOf(k token.Kind) DelimiterKind {
	switch k {
	case token.LParen:
		return DelimParen
	case token.LBrace:
		return DelimBrace
	case token.LBracket:
		return DelimBracket
	default:
		return DelimNone
	}
}
