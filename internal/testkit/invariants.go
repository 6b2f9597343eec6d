package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"hirexpand/internal/source"
	"hirexpand/internal/syntax"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) every node span is non-empty, points at sf and lies within its content
// 2) nodes are indexed in order and their spans do not overlap
// 3) a call's argument group lies inside the call span and is delimited
func CheckSpanInvariants(f *syntax.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil syntax file or source file")
	}
	if f.ID != sf.ID {
		return fmt.Errorf("syntax file id mismatch: got=%d want=%d", f.ID, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i, n := range f.Nodes() {
		if int(n.Index()) != i {
			return fmt.Errorf("node %d has index %d", i, n.Index())
		}
		sp := n.Span()
		// 1) span sanity
		if sp.End <= sp.Start {
			return fmt.Errorf("empty node span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("node span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("node span end beyond content: %d > %d", sp.End, lenContent)
		}
		// 2) порядок и отсутствие пересечений
		if i > 0 && sp.Start < prevEnd {
			return fmt.Errorf("node %d span %v overlaps previous node ending at %d", i, sp, prevEnd)
		}
		prevEnd = sp.End

		// 3) argument group
		call, ok := n.(*syntax.MacroCall)
		if !ok {
			continue
		}
		tree, ok := call.TokenTree()
		if !ok {
			continue
		}
		if tree.Span.Start < sp.Start || tree.Span.End > sp.End {
			return fmt.Errorf("group span %v is outside call span %v", tree.Span, sp)
		}
		if len(tree.Tokens) < 2 {
			return fmt.Errorf("group of %s! has %d tokens", call.Name(), len(tree.Tokens))
		}
		first, last := tree.Tokens[0], tree.Tokens[len(tree.Tokens)-1]
		if !first.Kind.IsOpenDelim() || first.Kind.Closing() != last.Kind {
			return fmt.Errorf("group of %s! is not delimited: %q ... %q", call.Name(), first.Text, last.Text)
		}
	}
	return nil
}
