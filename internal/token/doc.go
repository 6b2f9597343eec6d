// Package token defines lexical token kinds and trivia for the macro host
// language (a Rust-flavoured surface syntax).
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Punctuation is always a single character (Kind: Punct). Multi-character
//     operators are reconstructed by token trees through Spacing, not here.
//   - Keywords are identifiers; `macro_rules` is recognized by the syntax layer.
//   - Comments and whitespace are leading Trivia and never appear in the main
//     token stream.
package token
