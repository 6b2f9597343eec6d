// Package db is the in-memory host database behind hir.Database.
//
// Store owns the FileSet, interns macro call locations, caches parsed syntax
// per file revision and keeps recorded expansions as virtual source files.
// All methods are safe for concurrent use; concurrent requests for the same
// uncached parse are collapsed into one.
package db
