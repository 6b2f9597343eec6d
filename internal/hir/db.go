package hir

import (
	"fmt"

	"hirexpand/internal/source"
	"hirexpand/internal/syntax"
)

// Database is the read-only view of host state that resolution and
// expansion need. Implementations must be safe for concurrent use.
type Database interface {
	// LookupMacroCall returns the location id was interned from.
	LookupMacroCall(id MacroCallID) (MacroCallLoc, bool)
	// ParseFile returns the syntax of a real or macro file.
	ParseFile(file HirFileID) (*syntax.File, bool)
	// FileText returns the full text of a real file.
	FileText(file source.FileID) []byte
	// MacroFileText returns the recorded expansion text of a call.
	MacroFileText(id MacroCallID) ([]byte, bool)
	// LineIndex returns the newline index of a real file.
	LineIndex(file source.FileID) *source.LineIndex
}

// OriginalFile follows macro files back to the real file they were
// expanded from. The chain is acyclic: a call can only live in a file
// that existed before it was interned.
func OriginalFile(db Database, file HirFileID) source.FileID {
	for {
		if id, ok := file.FileID(); ok {
			return id
		}
		call, _ := file.MacroCall()
		loc, ok := db.LookupMacroCall(call)
		if !ok {
			panic(fmt.Sprintf("hir: macro call %d is not interned", call))
		}
		file = loc.AstID.File
	}
}

// FileText returns the text of a real or macro file; nil when a macro file
// has no recorded expansion.
func FileText(db Database, file HirFileID) []byte {
	if id, ok := file.FileID(); ok {
		return db.FileText(id)
	}
	call, _ := file.MacroCall()
	text, ok := db.MacroFileText(call)
	if !ok {
		return nil
	}
	return text
}

// ToNode materialises the macro call node an AstID points at.
func ToNode(db Database, ast AstID) (*syntax.MacroCall, bool) {
	f, ok := db.ParseFile(ast.File)
	if !ok {
		return nil, false
	}
	node, ok := f.Node(ast.Index)
	if !ok {
		return nil, false
	}
	call, ok := node.(*syntax.MacroCall)
	return call, ok
}

// ToRules materialises the macro_rules! node an AstID points at.
func ToRules(db Database, ast AstID) (*syntax.MacroRules, bool) {
	f, ok := db.ParseFile(ast.File)
	if !ok {
		return nil, false
	}
	node, ok := f.Node(ast.Index)
	if !ok {
		return nil, false
	}
	rules, ok := node.(*syntax.MacroRules)
	return rules, ok
}
