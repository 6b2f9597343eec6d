package trace

import "time"

// Kind says what an event marks.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindPoint
	KindHeartbeat
)

var kindNames = [...]string{
	KindBegin:     "begin",
	KindEnd:       "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the unit of work an event belongs to. Lower scopes are coarser;
// a Level admits every scope up to its own.
type Scope uint8

const (
	ScopeRun   Scope = iota + 1 // one expand invocation over many files
	ScopeFile                   // one source file
	ScopePhase                  // parse, resolve or expand inside a file
	ScopeCall                   // one macro call
)

var scopeNames = [...]string{
	ScopeRun:   "run",
	ScopeFile:  "file",
	ScopePhase: "phase",
	ScopeCall:  "call",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Attr is an extra key/value pair; attributes keep insertion order.
type Attr struct {
	Key   string
	Value string
}

// Event is one trace record.
//
// File, Macro and Call describe what is being expanded. They are set by the
// span that owns them and inherited by every nested span, so a call event
// always names its file.
type Event struct {
	Time    time.Time
	Seq     uint64
	Kind    Kind
	Scope   Scope
	SpanID  uint64
	Parent  uint64
	Lane    uint64 // span id of the enclosing file span
	Name    string
	File    string
	Macro   string
	Call    uint32 // interned macro call id, 0 when unknown
	Outcome string
	Attrs   []Attr
}

// Option fills in the subject of a span or point event.
type Option func(*Event)

// File names the source file the event is about.
func File(path string) Option {
	return func(ev *Event) { ev.File = path }
}

// Call names the macro invocation the event is about.
func Call(id uint32, macro string) Option {
	return func(ev *Event) {
		ev.Call = id
		ev.Macro = macro
	}
}

// With attaches a free-form attribute.
func With(key, value string) Option {
	return func(ev *Event) { ev.Attrs = append(ev.Attrs, Attr{Key: key, Value: value}) }
}
