package hir

import (
	"fmt"

	"hirexpand/internal/source"
)

// CrateID identifies the compilation unit owning a definition.
type CrateID uint32

// MacroCallID identifies one interned macro invocation.
type MacroCallID uint32

// NoMacroCallID is the invalid call id (zero is sentinel).
const NoMacroCallID MacroCallID = 0

// IsValid returns true if the ID is valid (non-zero).
func (id MacroCallID) IsValid() bool { return id != NoMacroCallID }

// HirFileID is either a real file or the expansion of a macro call.
type HirFileID struct {
	file  source.FileID
	call  MacroCallID
	macro bool
}

// RealFile wraps a real source file.
func RealFile(id source.FileID) HirFileID {
	return HirFileID{file: id}
}

// MacroFile names the virtual file produced by expanding call.
func MacroFile(call MacroCallID) HirFileID {
	return HirFileID{call: call, macro: true}
}

// IsMacroFile reports whether the file is a macro expansion.
func (h HirFileID) IsMacroFile() bool { return h.macro }

// FileID returns the real file id when h is not a macro file.
func (h HirFileID) FileID() (source.FileID, bool) {
	return h.file, !h.macro
}

// MacroCall returns the call whose expansion h is.
func (h HirFileID) MacroCall() (MacroCallID, bool) {
	return h.call, h.macro
}

func (h HirFileID) String() string {
	if h.macro {
		return fmt.Sprintf("macro#%d", h.call)
	}
	return fmt.Sprintf("file#%d", h.file)
}

// AstID anchors a syntax node: the file it lives in and its node index
// within that file.
type AstID struct {
	File  HirFileID
	Index uint32
}

func (a AstID) String() string {
	return fmt.Sprintf("%s@%d", a.File, a.Index)
}
