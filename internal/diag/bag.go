package diag

import (
	"cmp"
	"slices"

	"hirexpand/internal/source"
)

// DefaultLimit is the bag capacity used when NewBag gets a non-positive limit.
const DefaultLimit = 100

// Bag collects the diagnostics of one file up to a limit. Diagnostics past
// the limit are counted, not stored, so outputs can say how many are hidden.
type Bag struct {
	items   []Diagnostic
	max     int
	dropped int
}

func NewBag(limit int) *Bag {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Bag{items: make([]Diagnostic, 0, min(limit, 64)), max: limit}
}

// Add reports false when the bag is full; the diagnostic is then only counted.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Dropped — сколько диагностик не поместилось в лимит.
func (b *Bag) Dropped() int { return b.dropped }

// AddDropped restores a count recorded by an earlier run of the same file.
func (b *Bag) AddDropped(n int) {
	if n > 0 {
		b.dropped += n
	}
}

func (b *Bag) Len() int { return len(b.items) }

// Items returns the bag's own slice: callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

// Worst returns the highest severity in the bag; ok is false for an empty bag.
func (b *Bag) Worst() (sev Severity, ok bool) {
	for i := range b.items {
		if !ok || b.items[i].Severity > sev {
			sev, ok = b.items[i].Severity, true
		}
	}
	return sev, ok
}

func (b *Bag) HasErrors() bool {
	sev, ok := b.Worst()
	return ok && sev >= SevError
}

func (b *Bag) HasWarnings() bool {
	sev, ok := b.Worst()
	return ok && sev >= SevWarning
}

// Sort orders by file and position, then puts the more severe diagnostic
// first, then by code. Equal keys keep their report order.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first diagnostic of every code at every span.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Primary}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
