package hir

// BuiltinExpander is the closed set of macros implemented natively.
type BuiltinExpander uint8

const (
	BuiltinFile BuiltinExpander = iota + 1
	BuiltinLine
	BuiltinStringify
)

func (b BuiltinExpander) String() string {
	switch b {
	case BuiltinFile:
		return "file"
	case BuiltinLine:
		return "line"
	case BuiltinStringify:
		return "stringify"
	default:
		return "unknown"
	}
}

// MacroDefTag tells builtin definitions from macro_rules! ones.
type MacroDefTag uint8

const (
	DefBuiltin MacroDefTag = iota
	DefUserDefined
)

func (t MacroDefTag) String() string {
	if t == DefUserDefined {
		return "user-defined"
	}
	return "builtin"
}

// MacroDefKind is the kind tag of a definition. Builtin is meaningful only
// when Tag is DefBuiltin.
type MacroDefKind struct {
	Tag     MacroDefTag
	Builtin BuiltinExpander
}

// IsBuiltin returns the expander of a builtin definition.
func (k MacroDefKind) IsBuiltin() (BuiltinExpander, bool) {
	return k.Builtin, k.Tag == DefBuiltin
}

// MacroDefID identifies a macro definition.
type MacroDefID struct {
	Crate CrateID
	AstID AstID
	Kind  MacroDefKind
}

// MacroCallLoc is what a MacroCallID is interned from.
type MacroCallLoc struct {
	Def   MacroDefID
	AstID AstID
}
