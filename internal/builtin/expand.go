package builtin

import (
	"fmt"

	"hirexpand/internal/hir"
	"hirexpand/internal/source"
	"hirexpand/internal/syntax"
	"hirexpand/internal/tt"
)

// Expand runs the expander exp for call id. arg is the parsed argument
// group; the builtins read the call's source text instead of its contents.
// Errors of the routines are returned unchanged.
func Expand(exp hir.BuiltinExpander, db hir.Database, id hir.MacroCallID, arg tt.Subtree) (tt.Subtree, error) {
	switch exp {
	case hir.BuiltinFile:
		return expandFile(db, id, arg)
	case hir.BuiltinLine:
		return expandLine(db, id, arg)
	case hir.BuiltinStringify:
		return expandStringify(db, id, arg)
	default:
		return tt.Subtree{}, fmt.Errorf("%w: %d", ErrUnknownExpander, exp)
	}
}

// argGroup возвращает группу аргументов вызова и его расположение
func argGroup(db hir.Database, id hir.MacroCallID) (*syntax.TokenTree, hir.MacroCallLoc, error) {
	loc, ok := db.LookupMacroCall(id)
	if !ok {
		return nil, loc, fmt.Errorf("%w: %d", ErrUnknownCall, id)
	}
	call, ok := hir.ToNode(db, loc.AstID)
	if !ok {
		return nil, loc, &ExpandError{Kind: UnexpectedToken, Call: id}
	}
	tree, ok := call.TokenTree()
	if !ok {
		return nil, loc, &ExpandError{Kind: UnexpectedToken, Call: id}
	}
	return tree, loc, nil
}

// expandFile: абсолютные пути не отслеживаются, всегда "".
func expandFile(db hir.Database, id hir.MacroCallID, _ tt.Subtree) (tt.Subtree, error) {
	if _, _, err := argGroup(db, id); err != nil {
		return tt.Subtree{}, err
	}
	return tt.QuoteString(""), nil
}

func expandLine(db hir.Database, id hir.MacroCallID, _ tt.Subtree) (tt.Subtree, error) {
	tree, _, err := argGroup(db, id)
	if err != nil {
		return tt.Subtree{}, err
	}
	// Offset is taken in the file hosting the call and applied to the real
	// file after one hop through OriginalFile; positions inside macro files
	// are not remapped.
	offset := tree.TextRange().Start()
	file := hir.OriginalFile(db, hir.MacroFile(id))
	return tt.QuoteInt(uint64(lineNumber(db, file, offset))), nil
}

// lineNumber returns one plus the number of '\n' bytes before offset.
func lineNumber(db hir.Database, file source.FileID, offset uint32) uint32 {
	idx := db.LineIndex(file)
	if idx == nil {
		idx = source.NewLineIndex(db.FileText(file))
	}
	return idx.LineOf(offset)
}

func expandStringify(db hir.Database, id hir.MacroCallID, _ tt.Subtree) (tt.Subtree, error) {
	tree, loc, err := argGroup(db, id)
	if err != nil {
		return tt.Subtree{}, err
	}
	text := hir.FileText(db, loc.AstID.File)
	return tt.QuoteString(string(stripDelimiters(tree.TextRange().Slice(text)))), nil
}

// stripDelimiters drops one byte at each end; shorter input yields nothing.
func stripDelimiters(group []byte) []byte {
	if len(group) < 2 {
		return nil
	}
	return group[1 : len(group)-1]
}
