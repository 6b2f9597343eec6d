package builtin

import (
	"errors"
	"fmt"

	"hirexpand/internal/hir"
)

// ExpandErrorKind classifies expansion failures.
type ExpandErrorKind uint8

const (
	// UnexpectedToken: the call has no argument token tree.
	UnexpectedToken ExpandErrorKind = iota + 1
)

func (k ExpandErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	default:
		return "unknown"
	}
}

// ExpandError is returned by the expanders. Errors compare with errors.Is
// by Kind, so ErrUnexpectedToken matches any call.
type ExpandError struct {
	Kind ExpandErrorKind
	Call hir.MacroCallID
}

func (e *ExpandError) Error() string {
	if !e.Call.IsValid() {
		return fmt.Sprintf("macro expansion: %s", e.Kind)
	}
	return fmt.Sprintf("macro call %d: %s", e.Call, e.Kind)
}

func (e *ExpandError) Is(target error) bool {
	t, ok := target.(*ExpandError)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnexpectedToken = &ExpandError{Kind: UnexpectedToken}
	ErrUnknownExpander = errors.New("unknown builtin expander")
	ErrUnknownCall     = errors.New("macro call is not interned")
)
