// Package builtin implements the macros the front end expands natively:
// file!, line! and stringify!.
//
// Find maps a macro name to a builtin definition; Expand runs the expander
// of a resolved call. Both are pure functions of their arguments and the
// database contents, so a host may call them concurrently and memoize the
// results.
package builtin
