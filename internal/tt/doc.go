// Package tt implements token trees: the immutable, delimiter-nested token
// representation that macro expansion consumes and produces.
//
// A Subtree is a value. Builders return fresh trees; nothing in this package
// or its callers mutates a tree after construction. Leaves are Ident, Literal
// and Punct; punctuation is always one character, and multi-character
// operators are expressed through Spacing (Joint means "glued to the next
// Punct").
//
// QuoteString and QuoteInt build single-literal output trees for builtin
// macro expansion.
package tt
