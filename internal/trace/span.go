package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seq    atomic.Uint64
	spanID atomic.Uint64

	// open counts spans begun but not yet ended, per scope.
	open [len(scopeNames)]atomic.Int64
	// lastFile is the path of the most recently opened file span.
	lastFile atomic.Value
)

type tracerKey struct{}

type spanKey struct{}

// WithTracer returns a copy of ctx that carries t. A nil t stores Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer carried by ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// SpanFrom returns the innermost open span carried by ctx, or nil.
func SpanFrom(ctx context.Context) *Span {
	s, _ := ctx.Value(spanKey{}).(*Span)
	return s
}

// Span is an open unit of work. All methods accept a nil receiver, which is
// what Start returns when the tracer filters the scope out.
type Span struct {
	tracer  Tracer
	begin   Event
	started time.Time
	ended   atomic.Bool
}

// Start opens a span below the one carried by ctx and emits its begin
// event. The returned context carries the new span; the subject of the
// parent (file, macro, call) is inherited and then overridden by opts.
func Start(ctx context.Context, scope Scope, name string, opts ...Option) (context.Context, *Span) {
	t := FromContext(ctx)
	if !t.Level().ShouldEmit(scope) {
		return ctx, nil
	}
	ev := Event{Kind: KindBegin, Scope: scope, SpanID: spanID.Add(1), Name: name}
	if parent := SpanFrom(ctx); parent != nil {
		ev.Parent = parent.begin.SpanID
		ev.Lane = parent.begin.Lane
		ev.File = parent.begin.File
		ev.Macro = parent.begin.Macro
		ev.Call = parent.begin.Call
	}
	for _, opt := range opts {
		opt(&ev)
	}
	if scope == ScopeFile {
		ev.Lane = ev.SpanID
		lastFile.Store(ev.File)
	}

	s := &Span{tracer: t, begin: ev, started: time.Now()}
	open[scope].Add(1)
	emitAt(t, ev, s.started)
	return context.WithValue(ctx, spanKey{}, s), s
}

// ID returns the span id, 0 for a nil span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.SpanID
}

// End emits the end event with the given outcome and returns the span's
// duration. Only the first call has an effect.
func (s *Span) End(outcome string, opts ...Option) time.Duration {
	if s == nil || !s.ended.CompareAndSwap(false, true) {
		return 0
	}
	now := time.Now()
	ev := s.begin
	ev.Kind = KindEnd
	ev.Outcome = outcome
	ev.Attrs = nil
	for _, opt := range opts {
		opt(&ev)
	}
	open[s.begin.Scope].Add(-1)
	emitAt(s.tracer, ev, now)
	return now.Sub(s.started)
}

// Point emits an instant event under the span carried by ctx.
func Point(ctx context.Context, scope Scope, name, outcome string, opts ...Option) {
	t := FromContext(ctx)
	if !t.Level().ShouldEmit(scope) {
		return
	}
	ev := Event{Kind: KindPoint, Scope: scope, Name: name, Outcome: outcome}
	if parent := SpanFrom(ctx); parent != nil {
		ev.Parent = parent.begin.SpanID
		ev.Lane = parent.begin.Lane
		ev.File = parent.begin.File
		ev.Macro = parent.begin.Macro
		ev.Call = parent.begin.Call
	}
	for _, opt := range opts {
		opt(&ev)
	}
	emitAt(t, ev, time.Now())
}

func emitAt(t Tracer, ev Event, at time.Time) {
	ev.Time = at
	ev.Seq = seq.Add(1)
	t.Emit(&ev)
}

// OpenSpans returns how many spans of scope are currently open.
func OpenSpans(scope Scope) int64 {
	if int(scope) >= len(open) {
		return 0
	}
	return open[scope].Load()
}
