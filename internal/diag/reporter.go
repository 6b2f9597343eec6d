package diag

import (
	"sync"

	"hirexpand/internal/source"
)

// Reporter receives diagnostics from a phase. The lexer, the call finder
// and the expander only report; where diagnostics end up is the caller's
// business.
type Reporter interface {
	Report(d Diagnostic)
}

// Pending is a diagnostic under construction. Emit delivers it at most once;
// a Pending bound to a nil Reporter is silently dropped.
type Pending struct {
	to   Reporter
	d    Diagnostic
	sent bool
}

func ReportError(r Reporter, code Code, primary source.Span, msg string) *Pending {
	return &Pending{to: r, d: New(SevError, code, primary, msg)}
}

func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *Pending {
	return &Pending{to: r, d: New(SevWarning, code, primary, msg)}
}

func ReportInfo(r Reporter, code Code, primary source.Span, msg string) *Pending {
	return &Pending{to: r, d: New(SevInfo, code, primary, msg)}
}

// WithNote attaches a secondary location, e.g. the macro_rules! a call
// resolved to.
func (p *Pending) WithNote(sp source.Span, msg string) *Pending {
	p.d = p.d.WithNote(sp, msg)
	return p
}

func (p *Pending) Emit() {
	if p.sent || p.to == nil {
		return
	}
	p.sent = true
	p.to.Report(p.d)
}

// BagReporter collects into Bag. Builtins run on several goroutines per
// file, so Report serializes access to the bag.
type BagReporter struct {
	mu  sync.Mutex
	Bag *Bag
}

func (r *BagReporter) Report(d Diagnostic) {
	if r == nil || r.Bag == nil {
		return
	}
	r.mu.Lock()
	r.Bag.Add(d)
	r.mu.Unlock()
}
