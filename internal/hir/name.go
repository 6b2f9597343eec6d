package hir

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Name is an identifier as used for macro lookup: NFC-normalised, without
// a raw-identifier prefix. Names compare with ==.
type Name struct {
	text string
}

// NewName normalises text into a Name.
func NewName(text string) Name {
	text = strings.TrimPrefix(text, "r#")
	return Name{text: norm.NFC.String(text)}
}

func (n Name) String() string { return n.text }

// Empty reports whether the name has no text.
func (n Name) Empty() bool { return n.text == "" }
