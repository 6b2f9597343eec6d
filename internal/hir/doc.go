// Package hir holds the identifiers shared by macro resolution and
// expansion, and the file-origin resolver.
//
// A HirFileID names either a real source file or the virtual file produced
// by expanding one macro call. OriginalFile walks virtual files back to the
// real file they came from. All state lives behind the Database interface;
// this package keeps none.
package hir
