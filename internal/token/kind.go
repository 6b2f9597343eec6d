package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token (keywords included).
	Ident
	// Lifetime represents a lifetime or label such as 'a.
	Lifetime

	// IntLit represents an integer literal, suffix included (1u32).
	IntLit
	// FloatLit represents a float literal.
	FloatLit
	// StringLit represents a "..." literal.
	StringLit
	// RawStringLit represents an r"..." or r#"..."# literal.
	RawStringLit
	// ByteStringLit represents a b"..." literal.
	ByteStringLit
	// CharLit represents a 'c' literal.
	CharLit
	// ByteLit represents a b'c' literal.
	ByteLit

	// Punct represents a single punctuation character.
	Punct

	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	Lifetime:      "Lifetime",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringLit:     "StringLit",
	RawStringLit:  "RawStringLit",
	ByteStringLit: "ByteStringLit",
	CharLit:       "CharLit",
	ByteLit:       "ByteLit",
	Punct:         "Punct",
	LParen:        "LParen",
	RParen:        "RParen",
	LBrace:        "LBrace",
	RBrace:        "RBrace",
	LBracket:      "LBracket",
	RBracket:      "RBracket",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsOpenDelim reports whether k opens a delimited group.
func (k Kind) IsOpenDelim() bool {
	return k == LParen || k == LBrace || k == LBracket
}

// IsCloseDelim reports whether k closes a delimited group.
func (k Kind) IsCloseDelim() bool {
	return k == RParen || k == RBrace || k == RBracket
}

// Closing returns the kind that closes the group opened by k, or Invalid.
func (k Kind) Closing() Kind {
	switch k {
	case LParen:
		return RParen
	case LBrace:
		return RBrace
	case LBracket:
		return RBracket
	default:
		return Invalid
	}
}
