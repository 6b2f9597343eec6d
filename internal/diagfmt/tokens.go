package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"hirexpand/internal/diag"
	"hirexpand/internal/source"
	"hirexpand/internal/token"
)

// TokenOutput — одна строка дампа токенов. Depth считает открытые вокруг
// токена группы: по нему видно, что попадёт в аргументы вызова макроса.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Depth   int         `json:"depth"`
	Leading []string    `json:"leading,omitempty"`
}

// tokenRows обрезает поток на первом EOF.
func tokenRows(tokens []token.Token) []TokenOutput {
	rows := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		row := TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Span: tok.Span, Depth: tok.Depth}
		for _, tr := range tok.Leading {
			row.Leading = append(row.Leading, tr.Kind.String())
		}
		rows = append(rows, row)
		if tok.Kind == token.EOF {
			break
		}
	}
	return rows
}

// FormatTokensPretty печатает по строке на токен, с отступом по глубине группы.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	bw := bufio.NewWriter(w)
	for i, row := range tokenRows(tokens) {
		from, to, _ := resolve(fs, row.Span)
		fmt.Fprintf(bw, "%3d: %s%-15s", i+1, strings.Repeat("  ", row.Depth), row.Kind)
		if row.Text != "" {
			fmt.Fprintf(bw, " %q", row.Text)
		}
		fmt.Fprintf(bw, " at %d:%d-%d:%d", from.Line, from.Col, to.Line, to.Col)
		if len(row.Leading) > 0 {
			fmt.Fprintf(bw, " (leading: %s)", strings.Join(row.Leading, ", "))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// TokensOutput is the document written by `tokenize --format json`.
type TokensOutput struct {
	Tokens      []TokenOutput     `json:"tokens"`
	Diagnostics DiagnosticsOutput `json:"diagnostics"`
}

// FormatTokensJSON writes the token rows together with the lexer's
// diagnostics; bag may be nil.
func FormatTokensJSON(w io.Writer, tokens []token.Token, bag *diag.Bag, fs *source.FileSet) error {
	return encode(w, TokensOutput{
		Tokens:      tokenRows(tokens),
		Diagnostics: BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}),
	})
}
