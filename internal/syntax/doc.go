// Package syntax builds the shallow syntax tree the expander works on.
//
// A File is the list of macro-related nodes found in one source file:
// macro invocations (path!(..), path![..], path!{..}) and macro_rules!
// definitions. Everything else in the file is carried only as tokens.
// Nodes are numbered in order of appearance; that number is the index part
// of an AST id.
//
// The argument group of a call is not scanned for nested calls.
package syntax
