package diag

import (
	"testing"

	"hirexpand/internal/source"
)

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewError(ExpUnexpectedToken, source.Span{File: 0, Start: 8, End: 9}, "b"))
	bag.Add(New(SevWarning, ExpUnresolvedMacro, source.Span{File: 0, Start: 1, End: 2}, "a"))
	bag.Add(NewError(ExpUnexpectedToken, source.Span{File: 0, Start: 8, End: 9}, "dup"))

	bag.Sort()
	bag.Dedup()

	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", len(items))
	}
	if items[0].Code != ExpUnresolvedMacro || items[1].Code != ExpUnexpectedToken {
		t.Fatalf("unexpected order: %v, %v", items[0].Code, items[1].Code)
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatal("expected both errors and warnings")
	}
}

func TestBagLimitCountsDropped(t *testing.T) {
	bag := NewBag(2)
	for i, msg := range []string{"x", "y", "z", "w"} {
		added := bag.Add(NewError(LexUnknownChar, source.Span{Start: uint32(i)}, msg))
		if want := i < 2; added != want {
			t.Errorf("Add(%s) = %v, want %v", msg, added, want)
		}
	}
	if bag.Len() != 2 || bag.Dropped() != 2 {
		t.Fatalf("len=%d dropped=%d", bag.Len(), bag.Dropped())
	}
	bag.AddDropped(3)
	bag.AddDropped(-1)
	if bag.Dropped() != 5 {
		t.Fatalf("dropped after restore = %d", bag.Dropped())
	}
	if got := NewBag(0); got.max != DefaultLimit {
		t.Fatalf("non-positive limit must fall back to %d, got %d", DefaultLimit, got.max)
	}
}

func TestBagWorst(t *testing.T) {
	bag := NewBag(0)
	if _, ok := bag.Worst(); ok || bag.HasWarnings() {
		t.Fatal("empty bag has no severity")
	}
	bag.Add(New(SevInfo, ExpUserMacroUnsupported, source.Span{}, "i"))
	if sev, _ := bag.Worst(); sev != SevInfo || bag.HasWarnings() {
		t.Fatalf("worst = %v", sev)
	}
	bag.Add(New(SevWarning, ExpUnresolvedMacro, source.Span{}, "w"))
	if !bag.HasWarnings() || bag.HasErrors() {
		t.Fatal("warning must count as warning only")
	}
}

func TestPendingEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	r := &BagReporter{Bag: bag}
	p := ReportWarning(r, ExpUnresolvedMacro, source.Span{}, "unresolved macro `foo`").
		WithNote(source.Span{Start: 1, End: 2}, "called here")
	p.Emit()
	p.Emit()
	if bag.Len() != 1 || len(bag.Items()[0].Notes) != 1 || bag.Items()[0].Severity != SevWarning {
		t.Fatalf("unexpected bag %+v", bag.Items())
	}

	// без получателя диагностика просто теряется
	ReportError(nil, LexUnknownChar, source.Span{}, "lost").Emit()
	(*BagReporter)(nil).Report(New(SevInfo, ExpInfo, source.Span{}, "nil reporter"))

	if ExpUnresolvedMacro.String() != "[EXP3002]: Unresolved macro" {
		t.Fatalf("unexpected code string %q", ExpUnresolvedMacro.String())
	}
}
